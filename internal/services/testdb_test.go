package services

import (
	"testing"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/config"
	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore creates an in-memory SQLite primary store for unit testing.
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

// setupAuthDB creates an in-memory SQLite legacy auth store.
func setupAuthDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.AuthUser{}, &models.RefreshToken{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 720 * time.Hour,
	}
}

// validRegisterRequest returns a request that passes every validation rule.
func validRegisterRequest(email string) *dto.RegisterPilotRequest {
	return &dto.RegisterPilotRequest{
		Name:        "Jordan Reyes",
		Email:       email,
		Password:    "Sup3rSecret",
		PhoneNumber: "+1-555-0100",

		ExperienceDescription:      "Five years of commercial thermal inspections across utility-scale solar farms in the Southwest.",
		TotalFlightHours:           "100-500",
		CareerType:                 "full_time",
		AvailableDays:              []string{"monday", "wednesday", "friday"},
		HasOwnBusiness:             true,
		CompanyName:                "Reyes Aerial LLC",
		PastJobExperience:          "Solar farm inspections for two national operators.",
		AirspaceApprovalExperience: "LAANC authorizations in class C and D airspace.",
		IndustriesExperience:       []string{"solar", "utilities"},
		CommunicationPreferences:   []string{"email"},
		HowHeardAboutUs:            "referral",
		PreferredMissionType:       "solar_inspection",
		SoftwareExperience:         []string{"DJI Pilot", "Pix4D"},
		WillingToTravel:            true,
		HasVehicleForTravel:        "Pickup truck with a charging inverter.",
		CanChargeBatteriesOnRoad:   true,
		TeamExperience:             "Led two-pilot crews on large sites.",
		WorksWithOtherPilots:       "Regularly subcontract with three local pilots.",
	}
}
