package services

import (
	"math"
	"strings"
)

// Compensation returns the payout in cents for a job with the given file
// count: $5 per file with a complexity multiplier of 1.5 above 200 files
// and 1.2 above 100.
func Compensation(fileCount int) int {
	if fileCount <= 0 {
		return 0
	}
	const baseRate = 500
	multiplier := 1.0
	if fileCount > 200 {
		multiplier = 1.5
	} else if fileCount > 100 {
		multiplier = 1.2
	}
	return int(math.Round(float64(fileCount) * baseRate * multiplier))
}

// RequirementsFor derives a static requirement list from the job title.
func RequirementsFor(title string) []string {
	t := strings.ToLower(title)
	base := []string{"Part 107 Certified"}

	if strings.Contains(t, "solar") {
		return append(base, "Solar inspection experience", "Thermal camera required")
	}
	if strings.Contains(t, "electrical") || strings.Contains(t, "substation") {
		return append(base, "High-voltage experience preferred", "Insurance required")
	}
	return append(base, "Thermal imaging experience")
}

// JobTypeFor tags a job by keyword-matching its title.
func JobTypeFor(title string) string {
	t := strings.ToLower(title)
	if strings.Contains(t, "solar") {
		return "solar"
	}
	if strings.Contains(t, "electrical") || strings.Contains(t, "substation") {
		return "electrical"
	}
	return "infrastructure"
}
