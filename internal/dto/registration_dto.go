package dto

// RegisterPilotRequest carries the basic identity fields plus the full
// registration questionnaire.
type RegisterPilotRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`

	ExperienceDescription      string   `json:"experienceDescription"`
	TotalFlightHours           string   `json:"totalFlightHours"` // bracket such as "100-500"
	CareerType                 string   `json:"careerType"`
	AvailableDays              []string `json:"availableDays"`
	HasOwnBusiness             bool     `json:"hasOwnBusiness"`
	CompanyName                string   `json:"companyName,omitempty"`
	PastJobExperience          string   `json:"pastJobExperience"`
	AirspaceApprovalExperience string   `json:"airspaceApprovalExperience"`
	IndustriesExperience       []string `json:"industriesExperience"`
	CommunicationPreferences   []string `json:"communicationPreferences"`
	HowHeardAboutUs            string   `json:"howHeardAboutUs"`
	PreferredMissionType       string   `json:"preferredMissionType"`
	MilitaryService            bool     `json:"militaryService"`
	MannedAircraftLicense      bool     `json:"mannedAircraftLicense"`
	AdvancedTraining           string   `json:"advancedTraining,omitempty"`
	OpenToTraining             bool     `json:"openToTraining"`
	SoftwareExperience         []string `json:"softwareExperience"`
	EmergencySituations        string   `json:"emergencySituations,omitempty"`
	WillingToTravel            bool     `json:"willingToTravel"`
	HasVehicleForTravel        string   `json:"hasVehicleForTravel"`
	CanChargeBatteriesOnRoad   bool     `json:"canChargeBatteriesOnRoad"`
	TeamExperience             string   `json:"teamExperience"`
	SpecialProjects            string   `json:"specialProjects,omitempty"`
	WorksWithOtherPilots       string   `json:"worksWithOtherPilots"`
}

type RegisterPilotResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	User    RegisteredUser       `json:"user"`
	Profile RegisteredProfileRef `json:"pilotProfile"`
}

type RegisteredUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type RegisteredProfileRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
