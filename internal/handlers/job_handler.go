package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/services"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobs  *services.JobService
	store *storage.Store
}

func NewJobHandler(jobs *services.JobService, store *storage.Store) *JobHandler {
	return &JobHandler{jobs: jobs, store: store}
}

// Available handles GET /api/jobs/available.
func (h *JobHandler) Available(c *fiber.Ctx) error {
	_, profile, err := resolvePilot(c, h.store)
	if err != nil {
		return err
	}

	jobs, err := h.jobs.AvailableJobs(profile)
	if err != nil {
		return h.translateError(c, err, "failed to list available jobs")
	}
	return c.JSON(jobs)
}

// MyProjects handles GET /api/jobs/my-projects.
func (h *JobHandler) MyProjects(c *fiber.Ctx) error {
	_, profile, err := resolvePilot(c, h.store)
	if err != nil {
		return err
	}

	projects, err := h.jobs.MyProjects(profile)
	if err != nil {
		return h.translateError(c, err, "failed to list projects")
	}
	return c.JSON(projects)
}

// Apply handles POST /api/jobs/:jobId/apply.
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	_, profile, err := resolvePilot(c, h.store)
	if err != nil {
		return err
	}

	job, err := h.jobs.Apply(profile, jobID)
	if err != nil {
		return h.translateError(c, err, "failed to apply for job")
	}

	return c.JSON(dto.JobActionResponse{
		Success: true,
		Message: "Successfully applied for job",
		Job:     job,
	})
}

// UpdateStatus handles PATCH /api/jobs/:jobId/status.
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid job id",
		})
	}

	var req dto.UpdateJobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	_, profile, err := resolvePilot(c, h.store)
	if err != nil {
		return err
	}

	job, err := h.jobs.UpdateStatus(profile, jobID, models.JobStatus(req.Status))
	if err != nil {
		return h.translateError(c, err, "failed to update job status")
	}

	return c.JSON(dto.JobActionResponse{
		Success: true,
		Message: fmt.Sprintf("Job status updated to %s", job.Status),
		Job:     job,
	})
}

func (h *JobHandler) translateError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, services.ErrPilotNotApproved):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Pilot profile not approved",
		})
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Pilot profile not found",
		})
	case errors.Is(err, services.ErrJobNotAvailable), errors.Is(err, services.ErrJobNotAssigned):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Error(logMsg, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
