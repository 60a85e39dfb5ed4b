package dto

import (
	"github.com/compliancedrone/pilot-platform/internal/models"
)

// AvailableJob is a job-board row annotated with the computed compensation
// and the requirement/type tags derived from the title.
type AvailableJob struct {
	models.InspectionJob
	Compensation int      `json:"compensation"`
	Requirements []string `json:"requirements"`
	Type         string   `json:"type"`
}

// MyProject is an assigned job annotated with compensation. Rating and
// feedback stay null until a real review subsystem exists.
type MyProject struct {
	models.InspectionJob
	Compensation int     `json:"compensation"`
	Rating       *int    `json:"rating"`
	Feedback     *string `json:"feedback"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

type JobActionResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Job     *models.InspectionJob `json:"job,omitempty"`
}

// ProcessingJobStatus is the /api/job/:jobId/status payload.
type ProcessingJobStatus struct {
	Job    models.ProcessingJob     `json:"job"`
	Result *models.ProcessingResult `json:"result,omitempty"`
}

type UpdatePilotStatusRequest struct {
	Status string `json:"status"`
}

// ProfileUpdateRequest allows partial updates of identity and profile fields.
type ProfileUpdateRequest struct {
	User         *ProfileUserUpdate  `json:"user,omitempty"`
	PilotProfile *PilotProfileUpdate `json:"pilotProfile,omitempty"`
}

type ProfileUserUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

type PilotProfileUpdate struct {
	CompanyName            *string   `json:"companyName,omitempty"`
	PhoneNumber            *string   `json:"phoneNumber,omitempty"`
	Address                *string   `json:"address,omitempty"`
	City                   *string   `json:"city,omitempty"`
	State                  *string   `json:"state,omitempty"`
	ZipCode                *string   `json:"zipCode,omitempty"`
	Part107Number          *string   `json:"part107Number,omitempty"`
	ThermalExperienceYears *int      `json:"thermalExperienceYears,omitempty"`
	TotalFlightHours       *int      `json:"totalFlightHours,omitempty"`
	InsuranceProvider      *string   `json:"insuranceProvider,omitempty"`
	InsurancePolicyNumber  *string   `json:"insurancePolicyNumber,omitempty"`
	DroneModels            *[]string `json:"droneModels,omitempty"`
	ThermalCameraModels    *[]string `json:"thermalCameraModels,omitempty"`
	ServiceStates          *[]string `json:"serviceStates,omitempty"`
	MaxTravelDistance      *int      `json:"maxTravelDistance,omitempty"`
}

type NewsletterSignupRequest struct {
	Email string `json:"email"`
}

type ApprovePilotResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Profile *models.PilotProfile `json:"profile,omitempty"`
}

// ProcessJobResponse mirrors the external processing service's payload.
type ProcessJobResponse struct {
	JobID          string `json:"job_id"`
	AnomaliesFound int    `json:"anomalies_found"`
	ExcelURL       string `json:"excel_url"`
	PDFURL         string `json:"pdf_url"`
}

// FlightPathResponse mirrors the external generate-flight-path payload.
type FlightPathResponse struct {
	JobID      string `json:"job_id"`
	KMZURL     string `json:"kmz_url"`
	KMLURL     string `json:"kml_url"`
	GeoJSONURL string `json:"geojson_url"`
}
