package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type projectRepo struct{ s *Store }

func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	return r.s.write(func(d *dataset) error {
		ensureID(&project.ID)
		now := d.now()
		if project.CreatedAt.IsZero() {
			project.CreatedAt = now
		}
		project.UpdatedAt = now
		if project.Status == "" {
			project.Status = models.ProjectActive
		}
		d.projects[project.ID] = *project
		return nil
	})
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var out *models.Project
	err := r.s.read(func(d *dataset) error {
		p, ok := d.projects[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *projectRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.s.write(func(d *dataset) error {
		p, ok := d.projects[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		for col, v := range fields {
			var err error
			switch col {
			case "name":
				p.Name, err = asString(col, v)
			case "description":
				p.Description, err = asString(col, v)
			case "status":
				p.Status, err = asString(col, v)
			case "updated_at":
			default:
				err = unknownColumn("projects", col)
			}
			if err != nil {
				return err
			}
		}
		p.UpdatedAt = d.now()
		d.projects[id] = p
		return nil
	})
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.projects[id]; !ok {
			return repositories.ErrRecordNotFound
		}
		delete(d.projects, id)
		return nil
	})
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Project, error) {
	var out []*models.Project
	err := r.s.read(func(d *dataset) error {
		for _, p := range d.projects {
			if p.OwnerID == ownerID {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool {
		return olderFirst(out[k].CreatedAt, out[i].CreatedAt, out[k].ID, out[i].ID)
	})
	return out, err
}

type taskRepo struct{ s *Store }

func (r *taskRepo) Create(ctx context.Context, task *models.Task) error {
	return r.s.write(func(d *dataset) error {
		ensureID(&task.ID)
		now := d.now()
		if task.CreatedAt.IsZero() {
			task.CreatedAt = now
		}
		task.UpdatedAt = now
		if task.Status == "" {
			task.Status = models.TaskPending
		}
		if task.Priority == 0 {
			task.Priority = 1
		}
		d.tasks[task.ID] = *task
		return nil
	})
}

func (r *taskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var out *models.Task
	err := r.s.read(func(d *dataset) error {
		t, ok := d.tasks[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r *taskRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.s.write(func(d *dataset) error {
		t, ok := d.tasks[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		for col, v := range fields {
			var err error
			switch col {
			case "title":
				t.Title, err = asString(col, v)
			case "description":
				t.Description, err = asString(col, v)
			case "status":
				t.Status, err = asString(col, v)
			case "priority":
				t.Priority, err = asInt(col, v)
			case "due_date":
				t.DueDate, err = asTimePtr(col, v)
			case "assignee_id":
				t.AssigneeID, err = asUUIDPtr(col, v)
			case "updated_at":
			default:
				err = unknownColumn("tasks", col)
			}
			if err != nil {
				return err
			}
		}
		t.UpdatedAt = d.now()
		d.tasks[id] = t
		return nil
	})
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.tasks[id]; !ok {
			return repositories.ErrRecordNotFound
		}
		delete(d.tasks, id)
		return nil
	})
}

func (r *taskRepo) list(match func(models.Task) bool) ([]*models.Task, error) {
	var out []*models.Task
	err := r.s.read(func(d *dataset) error {
		for _, t := range d.tasks {
			if match(t) {
				t := t
				out = append(out, &t)
			}
		}
		return nil
	})
	return out, err
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	out, err := r.list(func(t models.Task) bool { return t.ProjectID == projectID })
	sort.Slice(out, func(i, k int) bool {
		if out[i].Priority != out[k].Priority {
			return out[i].Priority > out[k].Priority
		}
		return olderFirst(out[i].CreatedAt, out[k].CreatedAt, out[i].ID, out[k].ID)
	})
	return out, err
}

func (r *taskRepo) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	out, err := r.list(func(t models.Task) bool { return t.AssigneeID != nil && *t.AssigneeID == userID })
	sort.Slice(out, func(i, k int) bool {
		a, b := out[i], out[k]
		switch {
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		}
		return olderFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out, err
}

func (r *taskRepo) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.s.write(func(d *dataset) error {
		for id, t := range d.tasks {
			if t.ProjectID == projectID {
				delete(d.tasks, id)
			}
		}
		return nil
	})
}
