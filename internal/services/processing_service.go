package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
)

var (
	ErrNoFiles         = errors.New("at least one file must be uploaded")
	ErrUpstreamTimeout = errors.New("processing service timed out")
)

// UpstreamError carries the detail string from a failed external call.
type UpstreamError struct {
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "processing service failed"
}

// UploadedFile is a temp-spooled multipart file handed to the proxy.
type UploadedFile struct {
	Path        string
	Name        string
	ContentType string
}

// ProcessingService forwards uploads to the external Python processing API
// and persists whatever it returns.
type ProcessingService struct {
	store   *storage.Store
	baseURL string
	client  *http.Client
}

func NewProcessingService(store *storage.Store, cfg *config.Config) *ProcessingService {
	return &ProcessingService{
		store:   store,
		baseURL: cfg.PythonAPIURL,
		client:  &http.Client{Timeout: cfg.PythonAPITimeout},
	}
}

// ProcessJob re-encodes the spooled files as multipart form data, posts them
// to {PYTHON_API}/process-job and records the returned job and result.
func (s *ProcessingService) ProcessJob(pilotID string, location string, files []UploadedFile) (*dto.ProcessJobResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			if err := writer.WriteField("pilot_id", pilotID); err != nil {
				return err
			}
			if err := writer.WriteField("location", location); err != nil {
				return err
			}
			for _, file := range files {
				part, err := writer.CreateFormFile("files", file.Name)
				if err != nil {
					return err
				}
				src, err := os.Open(file.Path)
				if err != nil {
					return err
				}
				_, err = io.Copy(part, src)
				src.Close()
				if err != nil {
					return err
				}
			}
			return writer.Close()
		}()
		pw.CloseWithError(err)
	}()

	var payload dto.ProcessJobResponse
	if err := s.post("/process-job", writer.FormDataContentType(), pr, &payload); err != nil {
		return nil, err
	}
	if payload.JobID == "" {
		return nil, &UpstreamError{Detail: "processing service returned no job id"}
	}

	if _, err := s.store.UpsertProcessingJob(&models.ProcessingJob{
		JobID:    payload.JobID,
		PilotID:  pilotID,
		Location: location,
		Status:   "completed",
	}); err != nil {
		return nil, err
	}

	if _, err := s.store.SaveProcessingResult(&models.ProcessingResult{
		JobID:          payload.JobID,
		AnomaliesFound: payload.AnomaliesFound,
		ExcelURL:       payload.ExcelURL,
		PDFURL:         payload.PDFURL,
	}); err != nil {
		return nil, err
	}

	return &payload, nil
}

// GenerateFlightPath forwards a KMZ file to the external flight-path
// generator and records the returned artifact URLs.
func (s *ProcessingService) GenerateFlightPath(jobID string, kmz UploadedFile) (*dto.FlightPathResponse, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		err := func() error {
			if err := writer.WriteField("job_id", jobID); err != nil {
				return err
			}
			part, err := writer.CreateFormFile("kmz", kmz.Name)
			if err != nil {
				return err
			}
			src, err := os.Open(kmz.Path)
			if err != nil {
				return err
			}
			_, err = io.Copy(part, src)
			src.Close()
			if err != nil {
				return err
			}
			return writer.Close()
		}()
		pw.CloseWithError(err)
	}()

	var payload dto.FlightPathResponse
	if err := s.post("/generate-flight-path", writer.FormDataContentType(), pr, &payload); err != nil {
		return nil, err
	}

	if _, err := s.store.SaveFlightPath(&models.FlightPath{
		JobID:            jobID,
		KMZFileURL:       payload.KMZURL,
		GeneratedPathURL: payload.KMLURL,
		GeoJSONURL:       payload.GeoJSONURL,
	}); err != nil {
		return nil, err
	}

	return &payload, nil
}

// JobStatus returns the recorded processing job and its result, or nil when
// the job id is unknown.
func (s *ProcessingService) JobStatus(jobID string) (*dto.ProcessingJobStatus, error) {
	job, result, err := s.store.GetProcessingJob(jobID)
	if err != nil || job == nil {
		return nil, err
	}
	return &dto.ProcessingJobStatus{Job: *job, Result: result}, nil
}

// post sends the request and decodes the JSON response into out. Non-2xx
// responses surface the upstream "detail" field when it parses.
func (s *ProcessingService) post(path string, contentType string, body io.Reader, out interface{}) error {
	resp, err := s.client.Post(s.baseURL+path, contentType, body)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return ErrUpstreamTimeout
		}
		return &UpstreamError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{Detail: "failed to read processing service response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if jsonErr := json.Unmarshal(raw, &detail); jsonErr == nil && detail.Detail != "" {
			return &UpstreamError{Detail: detail.Detail}
		}
		slog.Error("processing service returned error", "status", resp.StatusCode, "body", string(raw))
		return &UpstreamError{Detail: fmt.Sprintf("processing service returned status %d", resp.StatusCode)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &UpstreamError{Detail: "failed to parse processing service response"}
	}
	return nil
}
