package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUserCreateFailed  = errors.New("unable to create pilot account")
	ErrProfileFailed     = errors.New("unable to save pilot profile information")
	ErrAuthCreateFailed  = errors.New("unable to create authentication account")
	ErrHashFailed        = errors.New("password processing error")
	ErrStoreUnavailable  = errors.New("database connection error")
	ErrConstraintFailure = errors.New("data validation failed")
)

// ValidationError carries a field-specific message for a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return &ValidationError{Message: msg} }

const bcryptCost = 12

// RegistrationResult is what a successful saga returns to the handler.
type RegistrationResult struct {
	User    *models.User
	Profile *models.PilotProfile
	Auth    *models.AuthUser
}

// RegistrationService creates a pilot applicant across the primary store
// and the legacy auth store: identity row, pilot profile, then auth
// account, with compensating deletes in reverse order on failure.
type RegistrationService struct {
	store  *storage.Store
	authDB *gorm.DB
}

func NewRegistrationService(store *storage.Store, authDB *gorm.DB) *RegistrationService {
	return &RegistrationService{store: store, authDB: authDB}
}

func (s *RegistrationService) Register(req *dto.RegisterPilotRequest) (*RegistrationResult, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	// Advisory duplicate checks against both stores. The unique constraints
	// on email are the actual guard; a racing insert is caught below.
	existing, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	var existingAuth models.AuthUser
	err = s.authDB.First(&existingAuth, "email = ?", req.Email).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classifyStoreError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHashFailed, err)
	}

	firstName, lastName := splitName(req.Name)

	// Step 1: primary identity row.
	user, err := s.store.CreateUser(&models.User{
		Email:     req.Email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return nil, wrapStepError(ErrUserCreateFailed, err)
	}

	// Step 2: pilot profile referencing the identity.
	profile, err := s.store.CreatePilotProfile(buildProfile(user.ID, req))
	if err != nil {
		s.compensate(nil, user)
		return nil, wrapStepError(ErrProfileFailed, err)
	}

	// Step 3: legacy auth account.
	authUser := &models.AuthUser{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     "pilot",
	}
	if err := s.authDB.Create(authUser).Error; err != nil {
		s.compensate(profile, user)
		return nil, wrapStepError(ErrAuthCreateFailed, err)
	}

	return &RegistrationResult{User: user, Profile: profile, Auth: authUser}, nil
}

// compensate deletes partially created rows in reverse order. Failures are
// logged and swallowed; the original saga error is what the caller sees.
func (s *RegistrationService) compensate(profile *models.PilotProfile, user *models.User) {
	if profile != nil {
		slog.Warn("registration saga rollback: deleting pilot profile", "profile_id", profile.ID)
		if err := s.store.DeletePilotProfile(profile.ID); err != nil {
			slog.Error("failed to rollback pilot profile", "profile_id", profile.ID, "error", err)
		}
	}
	if user != nil {
		slog.Warn("registration saga rollback: deleting user", "user_id", user.ID)
		if err := s.store.DeleteUser(user.ID); err != nil {
			slog.Error("failed to rollback user", "user_id", user.ID, "error", err)
		}
	}
}

func buildProfile(userID uuid.UUID, req *dto.RegisterPilotRequest) *models.PilotProfile {
	return &models.PilotProfile{
		UserID:      userID,
		PhoneNumber: req.PhoneNumber,
		CompanyName: req.CompanyName,

		// The flight-hours answer is a bracket like "100-500"; store its
		// lower bound.
		TotalFlightHours: parseBracketLowerBound(req.TotalFlightHours),

		Status: models.PilotPending,

		ExperienceDescription:      req.ExperienceDescription,
		CareerType:                 req.CareerType,
		AvailableDays:              req.AvailableDays,
		HasOwnBusiness:             req.HasOwnBusiness,
		PastJobExperience:          req.PastJobExperience,
		AirspaceApprovalExperience: req.AirspaceApprovalExperience,
		IndustriesExperience:       req.IndustriesExperience,
		CommunicationPreferences:   req.CommunicationPreferences,
		HowHeardAboutUs:            req.HowHeardAboutUs,
		PreferredMissionType:       req.PreferredMissionType,
		MilitaryService:            req.MilitaryService,
		MannedAircraftLicense:      req.MannedAircraftLicense,
		AdvancedTraining:           req.AdvancedTraining,
		OpenToTraining:             req.OpenToTraining,
		SoftwareExperience:         req.SoftwareExperience,
		EmergencySituations:        req.EmergencySituations,
		WillingToTravel:            req.WillingToTravel,
		HasVehicleForTravel:        req.HasVehicleForTravel,
		CanChargeBatteriesOnRoad:   req.CanChargeBatteriesOnRoad,
		TeamExperience:             req.TeamExperience,
		SpecialProjects:            req.SpecialProjects,
		WorksWithOtherPilots:       req.WorksWithOtherPilots,

		CompletedJobs: 0,
		TotalEarnings: 0,
	}
}

func validateRegistration(req *dto.RegisterPilotRequest) error {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return validationErr("Name must be at least 2 characters")
	}
	if !validEmail(req.Email) {
		return validationErr("A valid email address is required")
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return validationErr("Phone number is required")
	}
	if len(req.ExperienceDescription) < 50 {
		return validationErr("Please provide at least 50 characters describing your experience")
	}
	if req.TotalFlightHours == "" || req.CareerType == "" {
		return validationErr("Missing required flight hours or career type")
	}
	if len(req.AvailableDays) == 0 {
		return validationErr("Please select at least one available day")
	}
	if req.HasOwnBusiness && strings.TrimSpace(req.CompanyName) == "" {
		return validationErr("Company name is required when you have your own business")
	}
	if req.PastJobExperience == "" || req.AirspaceApprovalExperience == "" {
		return validationErr("Missing required job experience or airspace approval information")
	}
	if len(req.IndustriesExperience) == 0 || len(req.CommunicationPreferences) == 0 {
		return validationErr("Please select at least one industry and communication method")
	}
	if req.HowHeardAboutUs == "" || req.PreferredMissionType == "" {
		return validationErr("Missing required referral source or mission type")
	}
	if len(req.SoftwareExperience) == 0 {
		return validationErr("Please select at least one software you have experience with")
	}
	if len(req.HasVehicleForTravel) < 10 {
		return validationErr("Please describe your vehicle situation for travel")
	}
	if len(req.TeamExperience) < 10 {
		return validationErr("Please describe your team experience")
	}
	if len(req.WorksWithOtherPilots) < 10 {
		return validationErr("Please describe your work with other pilots")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return validationErr("Password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return validationErr("Password must contain an uppercase letter, a lowercase letter and a digit")
	}
	return nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}

// splitName derives first/last name on the first space of the display name.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	idx := strings.Index(name, " ")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], strings.TrimSpace(name[idx+1:])
}

// parseBracketLowerBound extracts the leading integer of a range answer
// such as "100-500" or "500+".
func parseBracketLowerBound(bracket string) int {
	i := 0
	for i < len(bracket) && bracket[i] >= '0' && bracket[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(bracket[:i])
	if err != nil {
		return 0
	}
	return n
}

// wrapStepError keeps the step-specific sentinel while classifying
// constraint and connectivity failures from the underlying store.
func wrapStepError(step error, err error) error {
	if classified := classifyStoreError(err); classified != err {
		return classified
	}
	return fmt.Errorf("%w: %v", step, err)
}

func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique failed"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "foreign key constraint"):
		return ErrConstraintFailure
	case strings.Contains(msg, "connect"), strings.Contains(msg, "timeout"):
		return ErrStoreUnavailable
	}
	return err
}
