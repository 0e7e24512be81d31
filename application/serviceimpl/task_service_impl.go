package serviceimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"buildboard/domain/dto"
	"buildboard/domain/models"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
)

type TaskServiceImpl struct {
	store repositories.Store
}

func NewTaskService(store repositories.Store) services.TaskService {
	return &TaskServiceImpl{store: store}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, projectID, actorID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	if _, err := ownedProject(ctx, s.store, projectID, actorID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", services.ErrValidation)
	}
	if err := s.checkAssignee(ctx, req.AssigneeID); err != nil {
		return nil, err
	}
	if req.JobID != nil {
		if _, err := s.store.Jobs().GetByID(ctx, *req.JobID); err != nil {
			return nil, invalidReference(err, "job not found")
		}
	}

	priority := req.Priority
	if priority == 0 {
		priority = 1
	}

	task := &models.Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		JobID:       req.JobID,
		Title:       title,
		Description: req.Description,
		Status:      models.TaskPending,
		Priority:    priority,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   actorID,
	}
	if err := s.store.Tasks().Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "project_id", projectID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "project_id", projectID)
	return task, nil
}

func (s *TaskServiceImpl) ListProjectTasks(ctx context.Context, projectID, viewerID uuid.UUID) ([]*models.Task, error) {
	if _, err := ownedProject(ctx, s.store, projectID, viewerID); err != nil {
		return nil, err
	}
	return s.store.Tasks().ListByProject(ctx, projectID)
}

func (s *TaskServiceImpl) ListMyTasks(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	return s.store.Tasks().ListByAssignee(ctx, userID)
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id, viewerID uuid.UUID) (*models.Task, error) {
	task, _, err := s.accessibleTask(ctx, id, viewerID)
	return task, err
}

// UpdateTask เจ้าของ project หรือ assignee แก้ได้
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id, actorID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if _, _, err := s.accessibleTask(ctx, id, actorID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", services.ErrValidation)
		}
		fields["title"] = title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, req.AssigneeID); err != nil {
			return nil, err
		}
		fields["assignee_id"] = *req.AssigneeID
	}

	if len(fields) > 0 {
		if err := s.store.Tasks().UpdateFields(ctx, id, fields); err != nil {
			return nil, notFound(err, "task not found")
		}
		logger.InfoContext(ctx, "Task updated", "task_id", id, "fields", len(fields))
	}
	return s.store.Tasks().GetByID(ctx, id)
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id, actorID uuid.UUID) error {
	_, project, err := s.accessibleTask(ctx, id, actorID)
	if err != nil {
		return err
	}
	if project.OwnerID != actorID {
		return fmt.Errorf("%w: only the project owner can delete tasks", services.ErrForbidden)
	}

	if err := s.store.Tasks().Delete(ctx, id); err != nil {
		return notFound(err, "task not found")
	}
	logger.InfoContext(ctx, "Task deleted", "task_id", id)
	return nil
}

func (s *TaskServiceImpl) accessibleTask(ctx context.Context, id, userID uuid.UUID) (*models.Task, *models.Project, error) {
	task, err := s.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, "task not found")
	}
	project, err := s.store.Projects().GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, notFound(err, "project not found")
	}

	isAssignee := task.AssigneeID != nil && *task.AssigneeID == userID
	if project.OwnerID != userID && !isAssignee {
		return nil, nil, fmt.Errorf("%w: task not found", services.ErrNotFound)
	}
	return task, project, nil
}

func (s *TaskServiceImpl) checkAssignee(ctx context.Context, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.store.Users().GetByID(ctx, *assigneeID); err != nil {
		return invalidReference(err, "assignee not found")
	}
	return nil
}
