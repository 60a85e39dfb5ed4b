package handlers

import (
	"testing"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRegistrationApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	store := setupTestStore(t)
	authDB := setupAuthDB(t)
	handler := NewRegistrationHandler(
		services.NewRegistrationService(store, authDB),
		&config.Config{AppEnv: "test"},
	)

	app := fiber.New()
	app.Post("/api/register-pilot", handler.RegisterPilot)
	return app, authDB
}

func registrationPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":                       "Jordan Reyes",
		"email":                      email,
		"password":                   "Sup3rSecret",
		"phoneNumber":                "+1-555-0100",
		"experienceDescription":      "Five years of commercial thermal inspections across utility-scale solar farms in the Southwest.",
		"totalFlightHours":           "100-500",
		"careerType":                 "full_time",
		"availableDays":              []string{"monday", "friday"},
		"hasOwnBusiness":             false,
		"pastJobExperience":          "Solar farm inspections for two national operators.",
		"airspaceApprovalExperience": "LAANC authorizations in class C and D airspace.",
		"industriesExperience":       []string{"solar"},
		"communicationPreferences":   []string{"email"},
		"howHeardAboutUs":            "referral",
		"preferredMissionType":       "solar_inspection",
		"softwareExperience":         []string{"Pix4D"},
		"hasVehicleForTravel":        "Pickup truck with a charging inverter.",
		"teamExperience":             "Led two-pilot crews on large sites.",
		"worksWithOtherPilots":       "Regularly subcontract with three local pilots.",
	}
}

func TestRegisterPilotEndpoint(t *testing.T) {
	app, _ := newRegistrationApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/register-pilot", registrationPayload("new@example.com")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.RegisterPilotResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	assert.Equal(t, "new@example.com", body.User.Email)
	assert.Equal(t, "pending", body.Profile.Status)
	assert.NotEmpty(t, body.Profile.ID)
}

func TestRegisterPilotEndpointDuplicate(t *testing.T) {
	app, _ := newRegistrationApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/register-pilot", registrationPayload("dup@example.com")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/register-pilot", registrationPayload("dup@example.com")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.True(t, body.Error)
	assert.Equal(t, "Email already registered", body.Message)
}

func TestRegisterPilotEndpointValidation(t *testing.T) {
	app, _ := newRegistrationApp(t)

	payload := registrationPayload("invalid@example.com")
	payload["password"] = "weak"

	resp, err := app.Test(jsonRequest(t, "POST", "/api/register-pilot", payload), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Message, "Password")
}
