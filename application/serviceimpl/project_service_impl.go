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

type ProjectServiceImpl struct {
	store repositories.Store
}

func NewProjectService(store repositories.Store) services.ProjectService {
	return &ProjectServiceImpl{store: store}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, ownerID uuid.UUID, req *dto.CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", services.ErrValidation)
	}

	project := &models.Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: req.Description,
		Status:      models.ProjectActive,
	}
	if err := s.store.Projects().Create(ctx, project); err != nil {
		logger.ErrorContext(ctx, "Failed to create project", "owner_id", ownerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "owner_id", ownerID)
	return project, nil
}

// GetProject เจ้าของเห็นเสมอ, assignee ของ task ใน project ก็เห็นได้
func (s *ProjectServiceImpl) GetProject(ctx context.Context, id, viewerID uuid.UUID) (*models.Project, error) {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project not found")
	}
	if project.OwnerID == viewerID {
		return project, nil
	}

	tasks, err := s.store.Tasks().ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.AssigneeID != nil && *t.AssigneeID == viewerID {
			return project, nil
		}
	}
	return nil, fmt.Errorf("%w: project not found", services.ErrNotFound)
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error) {
	return s.store.Projects().ListByOwner(ctx, ownerID)
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, id, actorID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	if _, err := ownedProject(ctx, s.store, id, actorID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be blank", services.ErrValidation)
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.store.Projects().UpdateFields(ctx, id, fields); err != nil {
			return nil, notFound(err, "project not found")
		}
		logger.InfoContext(ctx, "Project updated", "project_id", id)
	}
	return s.store.Projects().GetByID(ctx, id)
}

// DeleteProject ลบ task ทั้งหมดของ project ไปด้วย
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id, actorID uuid.UUID) error {
	if _, err := ownedProject(ctx, s.store, id, actorID); err != nil {
		return err
	}

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Tasks().DeleteByProject(ctx, id); err != nil {
			return err
		}
		return tx.Projects().Delete(ctx, id)
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete project", "project_id", id, "error", err)
		return notFound(err, "project not found")
	}

	logger.InfoContext(ctx, "Project deleted", "project_id", id)
	return nil
}

func ownedProject(ctx context.Context, store repositories.Store, id, actorID uuid.UUID) (*models.Project, error) {
	project, err := store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project not found")
	}
	if project.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the project owner can do this", services.ErrForbidden)
	}
	return project, nil
}
