package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the primary-store identity record. Credentials live in the legacy
// auth store (AuthUser); this row is referenced by PilotProfile.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FirstName       string    `gorm:"size:100" json:"firstName"`
	LastName        string    `gorm:"size:100" json:"lastName"`
	ProfileImageURL string    `gorm:"type:text" json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserWithProfile embeds the optional pilot profile for joined reads.
type UserWithProfile struct {
	User
	PilotProfile *PilotProfile `json:"pilotProfile,omitempty"`
}
