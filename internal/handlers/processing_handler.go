package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/compliancedrone/pilot-platform/internal/auth"
	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProcessingHandler struct {
	processing *services.ProcessingService
	uploadDir  string
}

func NewProcessingHandler(processing *services.ProcessingService, uploadDir string) *ProcessingHandler {
	_ = os.MkdirAll(uploadDir, 0o755)
	return &ProcessingHandler{processing: processing, uploadDir: uploadDir}
}

// ProcessJob handles POST /api/process-job: spools the uploaded files to
// disk, forwards them to the processing service and returns its payload.
// Temp files are removed on every exit path.
func (h *ProcessingHandler) ProcessJob(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Multipart form data is required",
		})
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "At least one file must be uploaded",
		})
	}

	pilotID := c.FormValue("pilot_id")
	if pilotID == "" {
		if userID, err := auth.GetUserID(c); err == nil {
			pilotID = userID.String()
		}
	}
	location := c.FormValue("location")

	files, cleanup, err := h.spool(c, fileHeaders)
	defer cleanup()
	if err != nil {
		slog.Error("failed to spool upload", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process uploaded files",
		})
	}

	payload, err := h.processing.ProcessJob(pilotID, location, files)
	if err != nil {
		return h.translateError(c, err, "Failed to process job")
	}

	return c.JSON(payload)
}

// JobStatus handles GET /api/job/:jobId/status.
func (h *ProcessingHandler) JobStatus(c *fiber.Ctx) error {
	jobID := c.Params("jobId")

	status, err := h.processing.JobStatus(jobID)
	if err != nil {
		slog.Error("job status error", "job_id", jobID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch job status",
		})
	}
	if status == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Job not found",
		})
	}
	return c.JSON(status)
}

// UploadKMZ handles POST /api/upload-kmz: forwards a single KMZ file to the
// flight-path generator.
func (h *ProcessingHandler) UploadKMZ(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("kmz")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "KMZ file is required",
		})
	}

	jobID := c.FormValue("jobId")
	if jobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "jobId is required",
		})
	}

	files, cleanup, err := h.spool(c, []*multipart.FileHeader{fileHeader})
	defer cleanup()
	if err != nil {
		slog.Error("failed to spool kmz upload", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process uploaded file",
		})
	}

	payload, err := h.processing.GenerateFlightPath(jobID, files[0])
	if err != nil {
		return h.translateError(c, err, "Failed to upload KMZ")
	}

	return c.JSON(payload)
}

// spool saves multipart files into the upload dir under random names. The
// returned cleanup always removes whatever was written.
func (h *ProcessingHandler) spool(c *fiber.Ctx, headers []*multipart.FileHeader) ([]services.UploadedFile, func(), error) {
	files := make([]services.UploadedFile, 0, len(headers))
	cleanup := func() {
		for _, f := range files {
			if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
				slog.Warn("failed to clean temp file", "path", f.Path, "error", err)
			}
		}
	}

	for _, header := range headers {
		path := filepath.Join(h.uploadDir, uuid.New().String()+filepath.Ext(header.Filename))
		if err := c.SaveFile(header, path); err != nil {
			return files, cleanup, fmt.Errorf("failed to save %s: %w", header.Filename, err)
		}
		files = append(files, services.UploadedFile{
			Path:        path,
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		})
	}
	return files, cleanup, nil
}

func (h *ProcessingHandler) translateError(c *fiber.Ctx, err error, fallback string) error {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrNoFiles):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "At least one file must be uploaded",
		})
	case errors.Is(err, services.ErrUpstreamTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Processing service timed out. Please try again.",
		})
	case errors.As(err, &upstream):
		slog.Error("processing service error", "error", upstream.Detail)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: upstream.Error(),
		})
	}

	slog.Error("processing error", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: fallback,
	})
}
