package services

import (
	"context"

	"github.com/google/uuid"

	"buildboard/domain/dto"
	"buildboard/domain/models"
)

type ProjectService interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, req *dto.CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, id, viewerID uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error)
	UpdateProject(ctx context.Context, id, actorID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id, actorID uuid.UUID) error
}

type TaskService interface {
	CreateTask(ctx context.Context, projectID, actorID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	ListProjectTasks(ctx context.Context, projectID, viewerID uuid.UUID) ([]*models.Task, error)
	ListMyTasks(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	GetTask(ctx context.Context, id, viewerID uuid.UUID) (*models.Task, error)
	UpdateTask(ctx context.Context, id, actorID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id, actorID uuid.UUID) error
}
