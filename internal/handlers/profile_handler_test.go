package handlers

import (
	"testing"

	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileApp(t *testing.T, store *storage.Store, email string) *fiber.App {
	t.Helper()
	handler := NewProfileHandler(store)

	app := fiber.New()
	app.Patch("/api/profile/update", withClaims(jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": email,
	}), handler.Update)
	return app
}

func strPtr(s string) *string { return &s }

func TestProfileUpdatePartialFields(t *testing.T) {
	store := setupTestStore(t)
	profile := seedPilotUser(t, store, "edit@example.com", models.PilotApproved)
	app := newProfileApp(t, store, "edit@example.com")

	models1 := []string{"DJI M30T", "Autel EVO II Dual"}
	resp, err := app.Test(jsonRequest(t, "PATCH", "/api/profile/update", dto.ProfileUpdateRequest{
		User: &dto.ProfileUserUpdate{FirstName: strPtr("Casey")},
		PilotProfile: &dto.PilotProfileUpdate{
			CompanyName: strPtr("Casey Aerial"),
			DroneModels: &models1,
		},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	user, err := store.GetUserByEmail("edit@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Casey", user.FirstName)

	refreshed, err := store.GetPilotProfileByID(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casey Aerial", refreshed.CompanyName)
	assert.Equal(t, []string{"DJI M30T", "Autel EVO II Dual"}, []string(refreshed.DroneModels))

	// Untouched fields keep their values
	assert.Equal(t, models.PilotApproved, refreshed.Status)
}

func TestProfileUpdateWithoutProfile(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.CreateUser(&models.User{Email: "noprofile@example.com"})
	require.NoError(t, err)
	app := newProfileApp(t, store, "noprofile@example.com")

	resp, err := app.Test(jsonRequest(t, "PATCH", "/api/profile/update", dto.ProfileUpdateRequest{
		User: &dto.ProfileUserUpdate{FirstName: strPtr("Ghost")},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
