package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateProjectRequest
	if !parseBody(c, &req) {
		return nil
	}

	project, err := h.projectService.CreateProject(ctx, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Project creation failed", "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID)
	return utils.CreatedResponse(c, dto.ProjectToProjectResponse(project))
}

func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	projects, err := h.projectService.ListProjects(ctx, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectsToProjectResponses(projects))
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	projectID, ok := parseIDParam(c, "id", "project ID")
	if !ok {
		return nil
	}

	project, err := h.projectService.GetProject(ctx, projectID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectToProjectResponse(project))
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	projectID, ok := parseIDParam(c, "id", "project ID")
	if !ok {
		return nil
	}

	var req dto.UpdateProjectRequest
	if !parseBody(c, &req) {
		return nil
	}

	project, err := h.projectService.UpdateProject(ctx, projectID, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Project update failed", "project_id", projectID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ProjectToProjectResponse(project))
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	projectID, ok := parseIDParam(c, "id", "project ID")
	if !ok {
		return nil
	}

	if err := h.projectService.DeleteProject(ctx, projectID, user.ID); err != nil {
		logger.WarnContext(ctx, "Project deletion failed", "project_id", projectID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Project deleted", "project_id", projectID)
	return utils.NoContentResponse(c)
}
