package handlers

import (
	"log/slog"
	"time"

	"github.com/compliancedrone/pilot-platform/internal/dto"
	"github.com/compliancedrone/pilot-platform/internal/models"
	"github.com/compliancedrone/pilot-platform/internal/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type ProfileHandler struct {
	store *storage.Store
}

func NewProfileHandler(store *storage.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Update handles PATCH /api/profile/update: partial update of the identity
// row and the pilot profile. Only fields present in the payload change.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, profile, err := resolvePilot(c, h.store)
	if err != nil {
		return err
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Pilot profile not found",
		})
	}

	if req.User != nil {
		updates := map[string]interface{}{"updated_at": time.Now()}
		if req.User.FirstName != nil {
			updates["first_name"] = *req.User.FirstName
		}
		if req.User.LastName != nil {
			updates["last_name"] = *req.User.LastName
		}
		if err := h.store.DB().Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(updates).Error; err != nil {
			slog.Error("failed to update user", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	if req.PilotProfile != nil {
		updates := profileUpdates(req.PilotProfile)
		if len(updates) > 0 {
			if _, err := h.store.UpdatePilotProfile(profile.ID, updates); err != nil {
				slog.Error("failed to update pilot profile", "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: true, Message: "Internal server error",
				})
			}
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
	})
}

func profileUpdates(p *dto.PilotProfileUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if p.CompanyName != nil {
		updates["company_name"] = *p.CompanyName
	}
	if p.PhoneNumber != nil {
		updates["phone_number"] = *p.PhoneNumber
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.City != nil {
		updates["city"] = *p.City
	}
	if p.State != nil {
		updates["state"] = *p.State
	}
	if p.ZipCode != nil {
		updates["zip_code"] = *p.ZipCode
	}
	if p.Part107Number != nil {
		updates["part107_number"] = *p.Part107Number
	}
	if p.ThermalExperienceYears != nil {
		updates["thermal_experience_years"] = *p.ThermalExperienceYears
	}
	if p.TotalFlightHours != nil {
		updates["total_flight_hours"] = *p.TotalFlightHours
	}
	if p.InsuranceProvider != nil {
		updates["insurance_provider"] = *p.InsuranceProvider
	}
	if p.InsurancePolicyNumber != nil {
		updates["insurance_policy_number"] = *p.InsurancePolicyNumber
	}
	if p.DroneModels != nil {
		updates["drone_models"] = datatypes.NewJSONSlice(*p.DroneModels)
	}
	if p.ThermalCameraModels != nil {
		updates["thermal_camera_models"] = datatypes.NewJSONSlice(*p.ThermalCameraModels)
	}
	if p.ServiceStates != nil {
		updates["service_states"] = datatypes.NewJSONSlice(*p.ServiceStates)
	}
	if p.MaxTravelDistance != nil {
		updates["max_travel_distance"] = *p.MaxTravelDistance
	}
	return updates
}
