package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, ok := parseIDParam(c, "id", "user ID")
	if !ok {
		return nil
	}

	profile, err := h.profileService.GetProfile(ctx, userID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProfileToProfileResponse(profile))
}

// PutProfile เก็บ body ทั้งก้อนเป็น document (ไม่ผ่าน BodyParser)
func (h *ProfileHandler) PutProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	userID, ok := parseIDParam(c, "id", "user ID")
	if !ok {
		return nil
	}

	body := append([]byte(nil), c.Body()...)

	profile, err := h.profileService.PutProfile(ctx, userID, user.ID, body)
	if err != nil {
		logger.WarnContext(ctx, "Profile update failed", "user_id", userID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", userID, "bytes", len(body))
	return utils.SuccessResponse(c, dto.ProfileToProfileResponse(profile))
}
