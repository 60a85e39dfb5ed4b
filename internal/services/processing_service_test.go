package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) UploadedFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return UploadedFile{Path: path, Name: name, ContentType: "image/jpeg"}
}

func newProcessingService(store *storage.Store, baseURL string) *ProcessingService {
	return NewProcessingService(store, &config.Config{
		PythonAPIURL:     baseURL,
		PythonAPITimeout: 2 * time.Second,
	})
}

func TestProcessJobForwardsFilesAndPersists(t *testing.T) {
	store := setupTestStore(t)

	var gotPilotID, gotLocation string
	var gotFileNames []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/process-job", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotPilotID = r.FormValue("pilot_id")
		gotLocation = r.FormValue("location")
		for _, fh := range r.MultipartForm.File["files"] {
			gotFileNames = append(gotFileNames, fh.Filename)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"job_id":          "job-42",
			"anomalies_found": 3,
			"excel_url":       "https://cdn.example.com/job-42.xlsx",
			"pdf_url":         "https://cdn.example.com/job-42.pdf",
		})
	}))
	defer server.Close()

	svc := newProcessingService(store, server.URL)
	files := []UploadedFile{
		writeTempFile(t, "thermal-001.jpg", "frame-1"),
		writeTempFile(t, "thermal-002.jpg", "frame-2"),
	}

	payload, err := svc.ProcessJob("pilot-1", "Phoenix, AZ", files)
	require.NoError(t, err)
	assert.Equal(t, "job-42", payload.JobID)
	assert.Equal(t, 3, payload.AnomaliesFound)

	assert.Equal(t, "pilot-1", gotPilotID)
	assert.Equal(t, "Phoenix, AZ", gotLocation)
	assert.Equal(t, []string{"thermal-001.jpg", "thermal-002.jpg"}, gotFileNames)

	// Job and result recorded
	job, result, err := store.GetProcessingJob("job-42")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "completed", job.Status)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.AnomaliesFound)
	assert.Equal(t, "https://cdn.example.com/job-42.pdf", result.PDFURL)
}

func TestProcessJobRequiresFiles(t *testing.T) {
	store := setupTestStore(t)
	svc := newProcessingService(store, "http://localhost:1")

	_, err := svc.ProcessJob("pilot-1", "Phoenix, AZ", nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestProcessJobSurfacesUpstreamDetail(t *testing.T) {
	store := setupTestStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "unsupported image format"})
	}))
	defer server.Close()

	svc := newProcessingService(store, server.URL)
	_, err := svc.ProcessJob("pilot-1", "Phoenix, AZ", []UploadedFile{
		writeTempFile(t, "bad.bmp", "junk"),
	})
	require.Error(t, err)
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "unsupported image format", upstream.Detail)
}

func TestProcessJobRejectsMissingJobID(t *testing.T) {
	store := setupTestStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	svc := newProcessingService(store, server.URL)
	_, err := svc.ProcessJob("pilot-1", "Phoenix, AZ", []UploadedFile{
		writeTempFile(t, "ok.jpg", "frame"),
	})
	require.Error(t, err)
	var upstream *UpstreamError
	assert.ErrorAs(t, err, &upstream)
}

func TestProcessJobTimesOut(t *testing.T) {
	store := setupTestStore(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	svc := NewProcessingService(store, &config.Config{
		PythonAPIURL:     server.URL,
		PythonAPITimeout: 50 * time.Millisecond,
	})
	_, err := svc.ProcessJob("pilot-1", "Phoenix, AZ", []UploadedFile{
		writeTempFile(t, "slow.jpg", "frame"),
	})
	assert.ErrorIs(t, err, ErrUpstreamTimeout)
}

func TestGenerateFlightPath(t *testing.T) {
	store := setupTestStore(t)

	var gotJobID, gotKMZName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-flight-path", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotJobID = r.FormValue("job_id")
		if fhs := r.MultipartForm.File["kmz"]; len(fhs) > 0 {
			gotKMZName = fhs[0].Filename
		}
		json.NewEncoder(w).Encode(map[string]string{
			"job_id":      "job-7",
			"kmz_url":     "https://cdn.example.com/job-7.kmz",
			"kml_url":     "https://cdn.example.com/job-7.kml",
			"geojson_url": "https://cdn.example.com/job-7.geojson",
		})
	}))
	defer server.Close()

	svc := newProcessingService(store, server.URL)
	payload, err := svc.GenerateFlightPath("job-7", writeTempFile(t, "site.kmz", "kmz-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/job-7.kmz", payload.KMZURL)

	assert.Equal(t, "job-7", gotJobID)
	assert.Equal(t, "site.kmz", gotKMZName)

	var saved int64
	require.NoError(t, store.DB().Table("flight_paths").Count(&saved).Error)
	assert.Equal(t, int64(1), saved)
}

func TestJobStatusUnknownJob(t *testing.T) {
	store := setupTestStore(t)
	svc := newProcessingService(store, "http://localhost:1")

	status, err := svc.JobStatus("missing")
	require.NoError(t, err)
	assert.Nil(t, status)
}
