package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	projectID, ok := parseIDParam(c, "id", "project ID")
	if !ok {
		return nil
	}

	var req dto.CreateTaskRequest
	if !parseBody(c, &req) {
		return nil
	}

	logger.InfoContext(ctx, "Task creation attempt", "user_id", user.ID, "title", req.Title)

	task, err := h.taskService.CreateTask(ctx, projectID, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task creation failed", "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", user.ID)
	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ListProjectTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	projectID, ok := parseIDParam(c, "id", "project ID")
	if !ok {
		return nil
	}

	tasks, err := h.taskService.ListProjectTasks(ctx, projectID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

func (h *TaskHandler) GetUserTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	tasks, err := h.taskService.ListMyTasks(ctx, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskResponses(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	taskID, ok := parseIDParam(c, "id", "task ID")
	if !ok {
		return nil
	}

	task, err := h.taskService.GetTask(ctx, taskID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	taskID, ok := parseIDParam(c, "id", "task ID")
	if !ok {
		return nil
	}

	var req dto.UpdateTaskRequest
	if !parseBody(c, &req) {
		return nil
	}

	task, err := h.taskService.UpdateTask(ctx, taskID, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Task update failed", "task_id", taskID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID)
	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	taskID, ok := parseIDParam(c, "id", "task ID")
	if !ok {
		return nil
	}

	if err := h.taskService.DeleteTask(ctx, taskID, user.ID); err != nil {
		logger.WarnContext(ctx, "Task deletion failed", "task_id", taskID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID)
	return utils.NoContentResponse(c)
}
