package handlers

import (
	"log/slog"

	"github.com/compliancedrone/pilot-platform/internal/auth"
	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	store *storage.Store
}

func NewAdminHandler(store *storage.Store) *AdminHandler {
	return &AdminHandler{store: store}
}

// PendingPilots handles GET /api/admin/pilots/pending.
func (h *AdminHandler) PendingPilots(c *fiber.Ctx) error {
	pilots, err := h.store.GetPendingPilots()
	if err != nil {
		slog.Error("failed to list pending pilots", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch pending pilots",
		})
	}
	return c.JSON(fiber.Map{"pilots": pilots})
}

// ApprovedPilots handles GET /api/admin/pilots/approved.
func (h *AdminHandler) ApprovedPilots(c *fiber.Ctx) error {
	pilots, err := h.store.GetApprovedPilots()
	if err != nil {
		slog.Error("failed to list approved pilots", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch approved pilots",
		})
	}
	return c.JSON(fiber.Map{"pilots": pilots})
}

// ApprovePilot handles POST /api/admin/pilots/:pilotId/approve. It records
// who approved and when, and moves the pilot to approved.
func (h *AdminHandler) ApprovePilot(c *fiber.Ctx) error {
	pilotID, err := uuid.Parse(c.Params("pilotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pilot id",
		})
	}

	profile, err := h.store.GetPilotProfileByID(pilotID)
	if err != nil {
		slog.Error("failed to load pilot profile", "pilot_id", pilotID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to approve pilot",
		})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Pilot not found",
		})
	}
	if !profile.Status.CanTransition(models.PilotApproved) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Pilot cannot be approved from status " + string(profile.Status),
		})
	}

	var approvedBy *uuid.UUID
	if adminID, err := auth.GetUserID(c); err == nil {
		approvedBy = &adminID
	}

	updated, err := h.store.ApprovePilot(pilotID, approvedBy)
	if err != nil {
		slog.Error("failed to approve pilot", "pilot_id", pilotID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to approve pilot",
		})
	}

	slog.Info("pilot approved", "pilot_id", pilotID)
	return c.JSON(dto.ApprovePilotResponse{
		Success: true,
		Message: "Pilot approved",
		Profile: updated,
	})
}

// UpdatePilotStatus handles PATCH /api/admin/pilots/:pilotId/status.
func (h *AdminHandler) UpdatePilotStatus(c *fiber.Ctx) error {
	pilotID, err := uuid.Parse(c.Params("pilotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pilot id",
		})
	}

	var req dto.UpdatePilotStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	target := models.PilotStatus(req.Status)
	if !target.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown pilot status: " + req.Status,
		})
	}

	profile, err := h.store.GetPilotProfileByID(pilotID)
	if err != nil {
		slog.Error("failed to load pilot profile", "pilot_id", pilotID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update pilot status",
		})
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Pilot not found",
		})
	}
	if !profile.Status.CanTransition(target) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Cannot move pilot from " + string(profile.Status) + " to " + string(target),
		})
	}

	updated, err := h.store.UpdatePilotStatus(pilotID, target)
	if err != nil {
		slog.Error("failed to update pilot status", "pilot_id", pilotID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update pilot status",
		})
	}

	slog.Info("pilot status updated", "pilot_id", pilotID, "status", target)
	return c.JSON(fiber.Map{"success": true, "pilot": updated})
}
