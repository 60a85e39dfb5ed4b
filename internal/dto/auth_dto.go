package dto

import (
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// CurrentUserResponse is the /api/auth/user payload: primary-store identity
// with the pilot profile embedded when one exists.
type CurrentUserResponse struct {
	models.User
	PilotProfile *models.PilotProfile `json:"pilotProfile,omitempty"`
}
