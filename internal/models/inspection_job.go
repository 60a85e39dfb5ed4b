package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the closed set of inspection-job states.
type JobStatus string

const (
	JobCreated    JobStatus = "created"
	JobAssigned   JobStatus = "assigned"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobCreated:    {JobAssigned, JobCancelled},
	JobAssigned:   {JobInProgress, JobCompleted, JobCancelled},
	JobInProgress: {JobCompleted, JobCancelled},
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobCreated, JobAssigned, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// CanTransition reports whether moving from s to target is allowed.
// Same-state writes are no-ops and allowed.
func (s JobStatus) CanTransition(target JobStatus) bool {
	if s == target {
		return true
	}
	for _, t := range jobTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// InspectionJob is a job-board entry. AssignedPilotID is null while the job
// is unclaimed; the apply path sets it together with the assigned status in
// one conditional update.
type InspectionJob struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientUserID    *uuid.UUID `gorm:"type:uuid" json:"clientUserId"`
	AssignedPilotID *uuid.UUID `gorm:"type:uuid;index" json:"assignedPilotId"`

	Title          string `gorm:"size:255;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	Location       string `gorm:"size:255" json:"location"`
	CoordinatesLat string `gorm:"size:50" json:"coordinatesLat"`
	CoordinatesLng string `gorm:"size:50" json:"coordinatesLng"`

	Status JobStatus `gorm:"size:20;default:'created';index" json:"status"`

	FileCount       int  `gorm:"default:0" json:"fileCount"`
	ProcessedCount  int  `gorm:"default:0" json:"processedCount"`
	AnomalyCount    *int `json:"anomalyCount"`
	ReportGenerated bool `gorm:"default:false" json:"reportGenerated"`

	ScheduledDate *time.Time `json:"scheduledDate"`
	CompletedAt   *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
