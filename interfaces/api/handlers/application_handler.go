package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type ApplicationHandler struct {
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply POST /applications {jobId} -> {chatId, application}
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var req dto.ApplyRequest
	if !parseBody(c, &req) {
		return nil
	}

	logger.InfoContext(ctx, "Apply attempt", "job_id", req.JobID, "worker_id", user.ID)

	app, err := h.applicationService.ApplyToJob(ctx, req.JobID, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Apply failed", "job_id", req.JobID, "worker_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Applied to job", "job_id", req.JobID, "chat_id", app.ChatID, "application_id", app.ID)

	return utils.SuccessResponse(c, dto.ApplyResponse{
		ChatID:      app.ChatID,
		Application: dto.ApplicationToResponse(app),
	})
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	apps, err := h.applicationService.ListMine(ctx, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ApplicationsToResponses(apps))
}

func (h *ApplicationHandler) GetByChat(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	chatID, ok := parseIDParam(c, "chatId", "chat ID")
	if !ok {
		return nil
	}

	app, err := h.applicationService.GetByChat(ctx, chatID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ApplicationToResponse(app))
}

// UpdateStatus PATCH /applications/by-chat/:chatId {status}
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	chatID, ok := parseIDParam(c, "chatId", "chat ID")
	if !ok {
		return nil
	}

	var req dto.UpdateApplicationStatusRequest
	if !parseBody(c, &req) {
		return nil
	}

	app, err := h.applicationService.SetApplicationStatus(ctx, chatID, req.Status, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Application status update failed", "chat_id", chatID, "status", req.Status, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Application status updated", "chat_id", chatID, "status", app.Status)
	return utils.SuccessResponse(c, dto.ApplicationToResponse(app))
}
