package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/database"
	"github.com/compliancedrone/pilot-platform/internal/logging"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/google/uuid"
)

// Seeds sample thermal inspection jobs for local testing.
func main() {
	logging.Setup()

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	jobs := sampleJobs()
	if err := database.DB.Create(&jobs).Error; err != nil {
		slog.Error("job seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("seeded inspection jobs", "count", len(jobs))
	for _, job := range jobs {
		slog.Info("seeded", "title", job.Title, "location", job.Location)
	}
}

func sampleJobs() []models.InspectionJob {
	return []models.InspectionJob{
		{
			ID:             uuid.New(),
			Title:          "Large Solar Farm Thermal Inspection - Phoenix",
			Description:    "Comprehensive thermal inspection of 500MW solar installation. Requires detailed thermal imaging of all panels and electrical connections to identify hot spots and potential failures.",
			Location:       "Phoenix, AZ",
			CoordinatesLat: "33.4484",
			CoordinatesLng: "-112.0740",
			Status:         models.JobCreated,
			FileCount:      250,
			ScheduledDate:  date(2025, time.September, 25),
		},
		{
			ID:             uuid.New(),
			Title:          "Electrical Substation Thermal Survey",
			Description:    "Thermal inspection of high-voltage electrical substation. Looking for overheating transformers, switches, and connections. Critical infrastructure requiring experienced pilot.",
			Location:       "Austin, TX",
			CoordinatesLat: "30.2672",
			CoordinatesLng: "-97.7431",
			Status:         models.JobCreated,
			FileCount:      75,
			ScheduledDate:  date(2025, time.September, 30),
		},
		{
			ID:             uuid.New(),
			Title:          "Commercial Solar Array - Maintenance Check",
			Description:    "Routine thermal inspection for 50MW commercial solar array. Previous anomalies detected, need follow-up analysis and detailed reporting.",
			Location:       "San Diego, CA",
			CoordinatesLat: "32.7157",
			CoordinatesLng: "-117.1611",
			Status:         models.JobCreated,
			FileCount:      120,
			ScheduledDate:  date(2025, time.October, 5),
		},
		{
			ID:             uuid.New(),
			Title:          "Wind Farm Electrical Infrastructure",
			Description:    "Thermal inspection of wind turbine electrical systems. Check transformer boxes, connections, and control systems for thermal anomalies.",
			Location:       "Amarillo, TX",
			CoordinatesLat: "35.2220",
			CoordinatesLng: "-101.8313",
			Status:         models.JobCreated,
			FileCount:      180,
			ScheduledDate:  date(2025, time.October, 8),
		},
		{
			ID:             uuid.New(),
			Title:          "Industrial Solar Installation Inspection",
			Description:    "Large industrial facility solar installation inspection. Focus on inverters, combiner boxes, and panel connections for potential overheating issues.",
			Location:       "Las Vegas, NV",
			CoordinatesLat: "36.1699",
			CoordinatesLng: "-115.1398",
			Status:         models.JobCreated,
			FileCount:      200,
			ScheduledDate:  date(2025, time.October, 12),
		},
	}
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
