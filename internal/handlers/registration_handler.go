package handlers

import (
	"errors"
	"log/slog"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RegistrationHandler struct {
	registration *services.RegistrationService
	cfg          *config.Config
}

func NewRegistrationHandler(registration *services.RegistrationService, cfg *config.Config) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, cfg: cfg}
}

// RegisterPilot handles POST /api/register-pilot.
func (h *RegistrationHandler) RegisterPilot(c *fiber.Ctx) error {
	var req dto.RegisterPilotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.registration.Register(&req)
	if err != nil {
		return h.translateError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterPilotResponse{
		Success: true,
		Message: "Pilot registration submitted successfully",
		User: dto.RegisteredUser{
			ID:    result.Auth.ID.String(),
			Email: result.Auth.Email,
			Name:  result.Auth.Name,
		},
		Profile: dto.RegisteredProfileRef{
			ID:     result.Profile.ID.String(),
			Status: string(result.Profile.Status),
		},
	})
}

func (h *RegistrationHandler) translateError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validation.Message,
		})
	case errors.Is(err, services.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "Email already registered",
		})
	case errors.Is(err, services.ErrConstraintFailure):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Data validation failed. Please check your information.",
		})
	case errors.Is(err, services.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Database connection error. Please try again in a moment.",
		})
	case errors.Is(err, services.ErrUserCreateFailed):
		slog.Error("registration saga failed", "step", "user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to create pilot profile. Please check your information and try again.",
		})
	case errors.Is(err, services.ErrProfileFailed):
		slog.Error("registration saga failed", "step", "profile", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to save pilot profile information. Please try again.",
		})
	case errors.Is(err, services.ErrAuthCreateFailed):
		slog.Error("registration saga failed", "step", "auth", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to create authentication account. Please try again.",
		})
	case errors.Is(err, services.ErrHashFailed):
		slog.Error("registration failed", "step", "hash", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Password processing error. Please try again.",
		})
	}

	slog.Error("pilot registration error", "error", err)
	resp := dto.ErrorResponse{
		Error:   true,
		Message: "Registration failed. Please verify your information and try again.",
	}
	if !h.cfg.IsProduction() {
		resp.Details = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
