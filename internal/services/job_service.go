package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobNotAvailable   = errors.New("job not found or not available")
	ErrJobNotAssigned    = errors.New("job not found or not assigned to you")
	ErrPilotNotApproved  = errors.New("pilot profile not approved")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrProfileNotFound   = errors.New("pilot profile not found")
)

// JobService implements the inspection-job workflow: listing, claiming and
// status updates with the completion side effects.
type JobService struct {
	store *storage.Store
}

func NewJobService(store *storage.Store) *JobService {
	return &JobService{store: store}
}

// AvailableJobs lists unclaimed jobs for an approved pilot, oldest first,
// annotated with compensation and title-derived requirements.
func (s *JobService) AvailableJobs(profile *models.PilotProfile) ([]dto.AvailableJob, error) {
	if profile == nil || profile.Status != models.PilotApproved {
		return nil, ErrPilotNotApproved
	}

	var jobs []models.InspectionJob
	err := s.store.DB().
		Where("status IN ? AND assigned_pilot_id IS NULL", []string{string(models.JobCreated), "available"}).
		Order("created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available jobs: %w", err)
	}

	out := make([]dto.AvailableJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.AvailableJob{
			InspectionJob: j,
			Compensation:  Compensation(j.FileCount),
			Requirements:  RequirementsFor(j.Title),
			Type:          JobTypeFor(j.Title),
		})
	}
	return out, nil
}

// MyProjects lists jobs assigned to the pilot, newest first. Rating and
// feedback stay null: no review subsystem exists yet.
func (s *JobService) MyProjects(profile *models.PilotProfile) ([]dto.MyProject, error) {
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	var jobs []models.InspectionJob
	err := s.store.DB().
		Where("assigned_pilot_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]dto.MyProject, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.MyProject{
			InspectionJob: j,
			Compensation:  Compensation(j.FileCount),
		})
	}
	return out, nil
}

// Apply claims a job for an approved pilot. The claim is a conditional
// update on (status = created, unassigned) so that of two racing pilots at
// most one succeeds.
func (s *JobService) Apply(profile *models.PilotProfile, jobID uuid.UUID) (*models.InspectionJob, error) {
	if profile == nil || profile.Status != models.PilotApproved {
		return nil, ErrPilotNotApproved
	}

	result := s.store.DB().Model(&models.InspectionJob{}).
		Where("id = ? AND status = ? AND assigned_pilot_id IS NULL", jobID, models.JobCreated).
		Updates(map[string]interface{}{
			"assigned_pilot_id": profile.ID,
			"status":            models.JobAssigned,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to apply for job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrJobNotAvailable
	}

	var job models.InspectionJob
	if err := s.store.DB().First(&job, "id = ?", jobID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload job: %w", err)
	}
	return &job, nil
}

// UpdateStatus moves an assigned job through its lifecycle on behalf of the
// assignee. Completing a job stamps the completion time, marks the report
// generated and credits the pilot in the same transaction.
func (s *JobService) UpdateStatus(profile *models.PilotProfile, jobID uuid.UUID, target models.JobStatus) (*models.InspectionJob, error) {
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	switch target {
	case models.JobAssigned, models.JobInProgress, models.JobCompleted, models.JobCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	var job models.InspectionJob
	err := s.store.DB().
		First(&job, "id = ? AND assigned_pilot_id = ?", jobID, profile.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotAssigned
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	if !job.Status.CanTransition(target) {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{
		"status":     target,
		"updated_at": time.Now(),
	}

	err = s.store.DB().Transaction(func(tx *gorm.DB) error {
		if target == models.JobCompleted && job.Status != models.JobCompleted {
			now := time.Now()
			updates["completed_at"] = &now
			updates["report_generated"] = true

			pay := Compensation(job.FileCount)
			res := tx.Model(&models.PilotProfile{}).
				Where("id = ?", profile.ID).
				Updates(map[string]interface{}{
					"completed_jobs": gorm.Expr("completed_jobs + 1"),
					"total_earnings": gorm.Expr("total_earnings + ?", pay),
					"status":         models.PilotActive,
					"updated_at":     time.Now(),
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update pilot stats: %w", res.Error)
			}
		}

		return tx.Model(&models.InspectionJob{}).
			Where("id = ?", jobID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.DB().First(&job, "id = ?", jobID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload job: %w", err)
	}
	return &job, nil
}
