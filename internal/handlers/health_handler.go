package handlers

import (
	"time"

	"github.com/compliancedrone/pilot-platform/internal/database"
	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Health handles GET /api/health. It reports degraded with 503 when either
// database is unreachable.
func Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "up",
		AuthDB:    "up",
	}

	code := fiber.StatusOK
	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "down"
		code = fiber.StatusServiceUnavailable
	}
	if err := database.PingAuth(); err != nil {
		resp.Status = "degraded"
		resp.AuthDB = "down"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(resp)
}
