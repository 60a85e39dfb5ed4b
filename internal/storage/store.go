package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the repository over the primary entity store. Reads that find
// nothing return (nil, nil); mutations return the mutated row.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that need conditional
// updates or transactions spanning several tables.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// --- User operations ---

func (s *Store) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// UpsertUser inserts the user or, when the id already exists, updates the
// row and refreshes updated_at.
func (s *Store) UpsertUser(user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.UpdatedAt = time.Now()
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

func (s *Store) CreateUser(user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) DeleteUser(id uuid.UUID) error {
	return s.db.Delete(&models.User{}, "id = ?", id).Error
}

// GetUserWithProfile left-joins the pilot profile; the profile is nil when
// the user has not registered as a pilot.
func (s *Store) GetUserWithProfile(id uuid.UUID) (*models.UserWithProfile, error) {
	user, err := s.GetUser(id)
	if err != nil || user == nil {
		return nil, err
	}
	profile, err := s.GetPilotProfile(id)
	if err != nil {
		return nil, err
	}
	return &models.UserWithProfile{User: *user, PilotProfile: profile}, nil
}

// --- Pilot profile operations ---

func (s *Store) CreatePilotProfile(profile *models.PilotProfile) (*models.PilotProfile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.Status == "" {
		profile.Status = models.PilotPending
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Store) UpdatePilotProfile(id uuid.UUID, updates map[string]interface{}) (*models.PilotProfile, error) {
	updates["updated_at"] = time.Now()
	result := s.db.Model(&models.PilotProfile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update pilot profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetPilotProfileByID(id)
}

func (s *Store) GetPilotProfile(userID uuid.UUID) (*models.PilotProfile, error) {
	var profile models.PilotProfile
	err := s.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pilot profile: %w", err)
	}
	return &profile, nil
}

func (s *Store) GetPilotProfileByID(id uuid.UUID) (*models.PilotProfile, error) {
	var profile models.PilotProfile
	err := s.db.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pilot profile by id: %w", err)
	}
	return &profile, nil
}

func (s *Store) DeletePilotProfile(id uuid.UUID) error {
	return s.db.Delete(&models.PilotProfile{}, "id = ?", id).Error
}

// GetPilotWithUser inner-joins the identity row; resolves to nil when
// either side is missing.
func (s *Store) GetPilotWithUser(profileID uuid.UUID) (*models.PilotWithUser, error) {
	profile, err := s.GetPilotProfileByID(profileID)
	if err != nil || profile == nil {
		return nil, err
	}
	user, err := s.GetUser(profile.UserID)
	if err != nil || user == nil {
		return nil, err
	}
	return &models.PilotWithUser{PilotProfile: *profile, User: *user}, nil
}

// --- Pilot management operations ---

func (s *Store) GetPendingPilots() ([]models.PilotWithUser, error) {
	return s.pilotsByStatus(models.PilotPending)
}

func (s *Store) GetApprovedPilots() ([]models.PilotWithUser, error) {
	return s.pilotsByStatus(models.PilotApproved)
}

func (s *Store) pilotsByStatus(status models.PilotStatus) ([]models.PilotWithUser, error) {
	var profiles []models.PilotProfile
	err := s.db.Where("status = ?", status).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pilots: %w", err)
	}

	result := make([]models.PilotWithUser, 0, len(profiles))
	for _, p := range profiles {
		var user models.User
		if err := s.db.First(&user, "id = ?", p.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // orphaned profile, skip like an inner join would
			}
			return nil, fmt.Errorf("failed to load pilot user: %w", err)
		}
		result = append(result, models.PilotWithUser{PilotProfile: p, User: user})
	}
	return result, nil
}

func (s *Store) ApprovePilot(profileID uuid.UUID, approvedBy *uuid.UUID) (*models.PilotProfile, error) {
	now := time.Now()
	return s.UpdatePilotProfile(profileID, map[string]interface{}{
		"status":      models.PilotApproved,
		"approved_at": &now,
		"approved_by": approvedBy,
	})
}

func (s *Store) UpdatePilotStatus(profileID uuid.UUID, status models.PilotStatus) (*models.PilotProfile, error) {
	return s.UpdatePilotProfile(profileID, map[string]interface{}{
		"status": status,
	})
}

// --- Processing pipeline operations ---

func (s *Store) UpsertProcessingJob(job *models.ProcessingJob) (*models.ProcessingJob, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"pilot_id", "location", "status"}),
	}).Create(job).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert processing job: %w", err)
	}
	var saved models.ProcessingJob
	if err := s.db.First(&saved, "job_id = ?", job.JobID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload processing job: %w", err)
	}
	return &saved, nil
}

func (s *Store) UpdateProcessingJobStatus(jobID string, status string) (*models.ProcessingJob, error) {
	result := s.db.Model(&models.ProcessingJob{}).Where("job_id = ?", jobID).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update processing job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	var job models.ProcessingJob
	if err := s.db.First(&job, "job_id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Store) SaveProcessingResult(result *models.ProcessingResult) (*models.ProcessingResult, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"anomalies_found", "excel_url", "pdf_url", "created_at"}),
	}).Create(result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save processing result: %w", err)
	}
	var saved models.ProcessingResult
	if err := s.db.First(&saved, "job_id = ?", result.JobID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload processing result: %w", err)
	}
	return &saved, nil
}

// GetProcessingJob returns the job and, when present, its result.
func (s *Store) GetProcessingJob(jobID string) (*models.ProcessingJob, *models.ProcessingResult, error) {
	var job models.ProcessingJob
	err := s.db.First(&job, "job_id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get processing job: %w", err)
	}

	var result models.ProcessingResult
	err = s.db.First(&result, "job_id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &job, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get processing result: %w", err)
	}
	return &job, &result, nil
}

func (s *Store) SaveFlightPath(entry *models.FlightPath) (*models.FlightPath, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kmz_file_url", "generated_path_url", "geojson_url", "created_at"}),
	}).Create(entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save flight path: %w", err)
	}
	var saved models.FlightPath
	if err := s.db.First(&saved, "job_id = ?", entry.JobID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload flight path: %w", err)
	}
	return &saved, nil
}
