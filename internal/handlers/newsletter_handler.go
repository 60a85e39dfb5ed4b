package handlers

import (
	"log/slog"
	"strings"

	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NewsletterHandler struct {
	mail *services.MailService
}

func NewNewsletterHandler(mail *services.MailService) *NewsletterHandler {
	return &NewsletterHandler{mail: mail}
}

// Signup handles POST /api/newsletter-signup and sends the welcome email.
func (h *NewsletterHandler) Signup(c *fiber.Ctx) error {
	var req dto.NewsletterSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "A valid email address is required",
		})
	}

	if err := h.mail.SendNewsletterWelcome(email); err != nil {
		slog.Error("newsletter welcome email failed", "email", email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send welcome email",
		})
	}

	slog.Info("newsletter signup", "email", email)
	return c.JSON(fiber.Map{"success": true, "message": "Subscribed"})
}
