package routes

import (
	"time"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/handlers"
	"github.com/compliancedrone/pilot-platform/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authDB *gorm.DB,
	authHandler *handlers.AuthHandler,
	registrationHandler *handlers.RegistrationHandler,
	jobHandler *handlers.JobHandler,
	processingHandler *handlers.ProcessingHandler,
	profileHandler *handlers.ProfileHandler,
	adminHandler *handlers.AdminHandler,
	newsletterHandler *handlers.NewsletterHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", handlers.Health)

	// Public endpoints
	api.Post("/register-pilot", registrationHandler.RegisterPilot)
	api.Post("/newsletter-signup", newsletterHandler.Signup)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so public routes stay untouched
	jwt := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Get("/auth/user", jwt, authHandler.CurrentUser)

	// Pilot job board
	api.Get("/jobs/available", jwt, jobHandler.Available)
	api.Get("/jobs/my-projects", jwt, jobHandler.MyProjects)
	api.Post("/jobs/:jobId/apply", jwt, jobHandler.Apply)
	api.Patch("/jobs/:jobId/status", jwt, jobHandler.UpdateStatus)

	// Profile
	api.Patch("/profile/update", jwt, profileHandler.Update)

	// Upload proxy to the processing service
	api.Post("/process-job", jwt, processingHandler.ProcessJob)
	api.Get("/job/:jobId/status", jwt, processingHandler.JobStatus)
	api.Post("/upload-kmz", jwt, processingHandler.UploadKMZ)

	// Admin panel. The admin middleware accepts either the X-Admin-Token
	// header or a JWT with admin privileges, so it handles JWT itself.
	admin := api.Group("/admin", middleware.AdminRequired(authDB, cfg))
	admin.Get("/pilots/pending", adminHandler.PendingPilots)
	admin.Get("/pilots/approved", adminHandler.ApprovedPilots)
	admin.Post("/pilots/:pilotId/approve", adminHandler.ApprovePilot)
	admin.Patch("/pilots/:pilotId/status", adminHandler.UpdatePilotStatus)
}
