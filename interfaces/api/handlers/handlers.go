package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

// Services ทุก service ที่ handler ต้องใช้
type Services struct {
	UserService         services.UserService
	JobService          services.JobService
	ApplicationService  services.ApplicationService
	ChatService         services.ChatService
	ProfileService      services.ProfileService
	ProjectService      services.ProjectService
	TaskService         services.TaskService
	UploadService       services.UploadService
	AssistantService    services.AssistantService
	SubscriptionService services.SubscriptionService
	AppName             string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	ChatHandler         *ChatHandler
	ProfileHandler      *ProfileHandler
	ProjectHandler      *ProjectHandler
	TaskHandler         *TaskHandler
	UploadHandler       *UploadHandler
	AIHandler           *AIHandler
	SubscriptionHandler *SubscriptionHandler
	HealthHandler       *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:         NewAuthHandler(services.UserService),
		JobHandler:          NewJobHandler(services.JobService, services.ApplicationService),
		ApplicationHandler:  NewApplicationHandler(services.ApplicationService),
		ChatHandler:         NewChatHandler(services.ChatService),
		ProfileHandler:      NewProfileHandler(services.ProfileService),
		ProjectHandler:      NewProjectHandler(services.ProjectService),
		TaskHandler:         NewTaskHandler(services.TaskService),
		UploadHandler:       NewUploadHandler(services.UploadService),
		AIHandler:           NewAIHandler(services.AssistantService),
		SubscriptionHandler: NewSubscriptionHandler(services.SubscriptionService),
		HealthHandler:       NewHealthHandler(services.AppName),
	}
}

// currentUser คืน user จาก Protected middleware; ok=false แปลว่าตอบ 401 ไปแล้ว
func currentUser(c *fiber.Ctx) (*utils.UserContext, bool) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Unauthorized access attempt", "path", c.Path())
		_ = utils.UnauthorizedResponse(c, "")
		return nil, false
	}
	return user, true
}

// viewerID uuid.Nil สำหรับ route ที่ไม่บังคับ login
func viewerID(c *fiber.Ctx) uuid.UUID {
	if user, err := utils.GetUserFromContext(c); err == nil {
		return user.ID
	}
	return uuid.Nil
}

func parseIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, bool) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Invalid "+label, name, raw)
		_ = utils.BadRequestResponse(c, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}

// parseBody BodyParser + validator; ok=false แปลว่าตอบ 400 ไปแล้ว
func parseBody(c *fiber.Ctx, req any) bool {
	ctx := c.UserContext()
	if err := c.BodyParser(req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		_ = utils.BadRequestResponse(c, "Invalid request body")
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		errs := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errs)
		_ = utils.ValidationErrorResponse(c, errs)
		return false
	}
	return true
}
