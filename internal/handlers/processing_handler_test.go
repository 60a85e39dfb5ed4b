package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/services"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessingApp(t *testing.T, store *storage.Store, upstreamURL, uploadDir string) *fiber.App {
	t.Helper()
	svc := services.NewProcessingService(store, &config.Config{
		PythonAPIURL:     upstreamURL,
		PythonAPITimeout: 2 * time.Second,
	})
	handler := NewProcessingHandler(svc, uploadDir)

	app := fiber.New()
	api := app.Group("/api", withClaims(jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "uploader@example.com",
	}))
	api.Post("/process-job", handler.ProcessJob)
	api.Get("/job/:jobId/status", handler.JobStatus)
	api.Post("/upload-kmz", handler.UploadKMZ)
	return app
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileField string, fileNames ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, name := range fileNames {
		part, err := writer.CreateFormFile(fileField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestProcessJobEndpoint(t *testing.T) {
	store := setupTestStore(t)
	uploadDir := t.TempDir()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"job_id":          "job-55",
			"anomalies_found": 1,
			"pdf_url":         "https://cdn.example.com/job-55.pdf",
		})
	}))
	defer upstream.Close()

	app := newProcessingApp(t, store, upstream.URL, uploadDir)
	req := multipartRequest(t, "/api/process-job",
		map[string]string{"location": "Phoenix, AZ"},
		"files", "thermal-001.jpg", "thermal-002.jpg")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "job-55", body["job_id"])

	// Spooled temp files are removed after the proxy call
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	job, _, err := store.GetProcessingJob("job-55")
	require.NoError(t, err)
	require.NotNil(t, job)
}

func TestProcessJobEndpointRequiresFiles(t *testing.T) {
	store := setupTestStore(t)
	app := newProcessingApp(t, store, "http://localhost:1", t.TempDir())

	req := multipartRequest(t, "/api/process-job",
		map[string]string{"location": "Phoenix, AZ"}, "files")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProcessJobEndpointCleansUpOnUpstreamError(t *testing.T) {
	store := setupTestStore(t)
	uploadDir := t.TempDir()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "processing crashed"})
	}))
	defer upstream.Close()

	app := newProcessingApp(t, store, upstream.URL, uploadDir)
	req := multipartRequest(t, "/api/process-job", nil, "files", "thermal.jpg")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessJobEndpointTimeout(t *testing.T) {
	store := setupTestStore(t)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer upstream.Close()

	svc := services.NewProcessingService(store, &config.Config{
		PythonAPIURL:     upstream.URL,
		PythonAPITimeout: 50 * time.Millisecond,
	})
	handler := NewProcessingHandler(svc, t.TempDir())
	app := fiber.New()
	app.Post("/api/process-job", handler.ProcessJob)

	resp, err := app.Test(multipartRequest(t, "/api/process-job", nil, "files", "slow.jpg"), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestUploadKMZEndpoint(t *testing.T) {
	store := setupTestStore(t)
	uploadDir := t.TempDir()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-flight-path", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"job_id":  "job-9",
			"kmz_url": "https://cdn.example.com/job-9.kmz",
		})
	}))
	defer upstream.Close()

	app := newProcessingApp(t, store, upstream.URL, uploadDir)
	req := multipartRequest(t, "/api/upload-kmz",
		map[string]string{"jobId": "job-9"}, "kmz", "site.kmz")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadKMZEndpointRequiresJobID(t *testing.T) {
	store := setupTestStore(t)
	app := newProcessingApp(t, store, "http://localhost:1", t.TempDir())

	req := multipartRequest(t, "/api/upload-kmz", nil, "kmz", "site.kmz")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJobStatusEndpoint(t *testing.T) {
	store := setupTestStore(t)
	app := newProcessingApp(t, store, "http://localhost:1", t.TempDir())

	resp, err := app.Test(jsonRequest(t, "GET", "/api/job/missing/status", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, err = store.UpsertProcessingJob(&models.ProcessingJob{JobID: "job-77", Status: "completed"})
	require.NoError(t, err)

	resp, err = app.Test(jsonRequest(t, "GET", "/api/job/job-77/status", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	job := body["job"].(map[string]interface{})
	assert.Equal(t, "job-77", job["jobId"])
}
