package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PilotStatus is the closed set of pilot platform states.
type PilotStatus string

const (
	PilotPending   PilotStatus = "pending"
	PilotApproved  PilotStatus = "approved"
	PilotActive    PilotStatus = "active"
	PilotInactive  PilotStatus = "inactive"
	PilotSuspended PilotStatus = "suspended"
)

var pilotTransitions = map[PilotStatus][]PilotStatus{
	PilotPending:   {PilotApproved, PilotSuspended},
	PilotApproved:  {PilotActive, PilotInactive, PilotSuspended},
	PilotActive:    {PilotInactive, PilotSuspended},
	PilotInactive:  {PilotActive, PilotSuspended},
	PilotSuspended: {PilotInactive, PilotActive},
}

func (s PilotStatus) Valid() bool {
	switch s {
	case PilotPending, PilotApproved, PilotActive, PilotInactive, PilotSuspended:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to target is allowed.
// Same-state writes are treated as no-ops and allowed.
func (s PilotStatus) CanTransition(target PilotStatus) bool {
	if s == target {
		return true
	}
	for _, t := range pilotTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// PilotProfile is the one-to-one extension of User describing a drone
// operator's qualifications, equipment and platform standing. The
// questionnaire fields mirror the registration form.
type PilotProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;constraint:OnDelete:CASCADE" json:"userId"`

	// Professional information
	CompanyName  string `gorm:"size:255" json:"companyName"`
	BusinessType string `gorm:"size:50" json:"businessType"`
	TaxID        string `gorm:"size:50" json:"taxId"`

	// Contact information
	PhoneNumber string `gorm:"size:50" json:"phoneNumber"`
	Address     string `gorm:"type:text" json:"address"`
	City        string `gorm:"size:100" json:"city"`
	State       string `gorm:"size:50" json:"state"`
	ZipCode     string `gorm:"size:20" json:"zipCode"`

	// Qualifications
	Part107Certified       bool       `json:"part107Certified"`
	Part107Number          string     `gorm:"size:50" json:"part107Number"`
	LicenseExpiryDate      *time.Time `json:"licenseExpiryDate"`
	ThermalExperienceYears int        `json:"thermalExperienceYears"`
	TotalFlightHours       int        `json:"totalFlightHours"`

	// Equipment
	DroneModels         datatypes.JSONSlice[string] `json:"droneModels"`
	ThermalCameraModels datatypes.JSONSlice[string] `json:"thermalCameraModels"`

	// Insurance
	HasInsurance          bool       `json:"hasInsurance"`
	InsuranceProvider     string     `gorm:"size:255" json:"insuranceProvider"`
	InsurancePolicyNumber string     `gorm:"size:100" json:"insurancePolicyNumber"`
	InsuranceExpiryDate   *time.Time `json:"insuranceExpiryDate"`
	LiabilityCoverage     int        `json:"liabilityCoverage"`

	// Geographic coverage
	ServiceStates     datatypes.JSONSlice[string] `json:"serviceStates"`
	MaxTravelDistance int                         `json:"maxTravelDistance"`

	// Platform status
	Status     PilotStatus `gorm:"size:20;default:'pending';index" json:"status"`
	ApprovedAt *time.Time  `json:"approvedAt"`
	ApprovedBy *uuid.UUID  `gorm:"type:uuid" json:"approvedBy"`

	// Performance counters
	CompletedJobs int  `gorm:"default:0" json:"completedJobs"`
	AverageRating *int `json:"averageRating"`
	TotalEarnings int  `gorm:"default:0" json:"totalEarnings"` // cents

	Notes            string `gorm:"type:text" json:"notes"`
	ApplicationNotes string `gorm:"type:text" json:"applicationNotes"`

	// Questionnaire answers
	ExperienceDescription      string                      `gorm:"type:text" json:"experienceDescription"`
	CareerType                 string                      `gorm:"size:50" json:"careerType"`
	AvailableDays              datatypes.JSONSlice[string] `json:"availableDays"`
	HasOwnBusiness             bool                        `json:"hasOwnBusiness"`
	PastJobExperience          string                      `gorm:"type:text" json:"pastJobExperience"`
	AirspaceApprovalExperience string                      `gorm:"type:text" json:"airspaceApprovalExperience"`
	IndustriesExperience       datatypes.JSONSlice[string] `json:"industriesExperience"`
	CommunicationPreferences   datatypes.JSONSlice[string] `json:"communicationPreferences"`
	HowHeardAboutUs            string                      `gorm:"size:100" json:"howHeardAboutUs"`
	PreferredMissionType       string                      `gorm:"size:100" json:"preferredMissionType"`
	MilitaryService            bool                        `json:"militaryService"`
	MannedAircraftLicense      bool                        `json:"mannedAircraftLicense"`
	AdvancedTraining           string                      `gorm:"type:text" json:"advancedTraining"`
	OpenToTraining             bool                        `gorm:"default:true" json:"openToTraining"`
	SoftwareExperience         datatypes.JSONSlice[string] `json:"softwareExperience"`
	EmergencySituations        string                      `gorm:"type:text" json:"emergencySituations"`
	WillingToTravel            bool                        `gorm:"default:true" json:"willingToTravel"`
	HasVehicleForTravel        string                      `gorm:"type:text" json:"hasVehicleForTravel"`
	CanChargeBatteriesOnRoad   bool                        `gorm:"default:true" json:"canChargeBatteriesOnRoad"`
	TeamExperience             string                      `gorm:"type:text" json:"teamExperience"`
	SpecialProjects            string                      `gorm:"type:text" json:"specialProjects"`
	WorksWithOtherPilots       string                      `gorm:"type:text" json:"worksWithOtherPilots"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PilotWithUser pairs a profile with its identity row for admin listings.
type PilotWithUser struct {
	PilotProfile
	User User `json:"user"`
}
