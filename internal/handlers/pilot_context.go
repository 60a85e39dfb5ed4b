package handlers

import (
	"github.com/compliancedrone/pilot-platform/internal/auth"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// resolvePilot loads the caller's primary-store identity and pilot profile
// from the JWT email claim. A nil profile with a nil error means the user
// exists but never registered as a pilot.
func resolvePilot(c *fiber.Ctx, store *storage.Store) (*models.User, *models.PilotProfile, error) {
	email, err := auth.GetEmail(c)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
	}

	user, err := store.GetUserByEmail(email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	profile, err := store.GetPilotProfile(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}
