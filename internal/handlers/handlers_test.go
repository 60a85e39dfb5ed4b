package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore creates an in-memory SQLite primary store for handler tests.
func setupTestStore(t *testing.T) *storage.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.PilotProfile{},
		&models.InspectionJob{},
		&models.ProcessingJob{},
		&models.ProcessingResult{},
		&models.FlightPath{},
	)
	require.NoError(t, err)

	return storage.New(db)
}

func setupAuthDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuthUser{}, &models.RefreshToken{}))
	return db
}

// withClaims injects a parsed JWT into the request context the way the JWT
// middleware would, so protected handlers can be tested in isolation.
func withClaims(claims jwt.MapClaims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{Claims: claims})
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
