package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type applicationRepo struct{ s *Store }

func (r *applicationRepo) CreateIfAbsent(ctx context.Context, app *models.Application) (bool, error) {
	created := false
	err := r.s.write(func(d *dataset) error {
		for _, a := range d.applications {
			if a.JobID == app.JobID && a.WorkerID == app.WorkerID {
				return nil
			}
		}
		ensureID(&app.ID)
		now := d.now()
		if app.CreatedAt.IsZero() {
			app.CreatedAt = now
		}
		app.UpdatedAt = now
		if app.Status == "" {
			app.Status = models.ApplicationPending
		}
		d.applications[app.ID] = *app
		created = true
		return nil
	})
	return created, err
}

func (r *applicationRepo) find(match func(models.Application) bool) (*models.Application, error) {
	var out *models.Application
	err := r.s.read(func(d *dataset) error {
		for _, a := range d.applications {
			if !match(a) {
				continue
			}
			if out == nil || olderFirst(a.CreatedAt, out.CreatedAt, a.ID, out.ID) {
				a := a
				out = &a
			}
		}
		if out == nil {
			return repositories.ErrRecordNotFound
		}
		return nil
	})
	return out, err
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return r.find(func(a models.Application) bool { return a.ID == id })
}

func (r *applicationRepo) GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*models.Application, error) {
	return r.find(func(a models.Application) bool { return a.JobID == jobID && a.WorkerID == workerID })
}

func (r *applicationRepo) GetByChatID(ctx context.Context, chatID uuid.UUID) (*models.Application, error) {
	return r.find(func(a models.Application) bool { return a.ChatID == chatID })
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.s.write(func(d *dataset) error {
		a, ok := d.applications[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		a.Status = status
		a.UpdatedAt = d.now()
		d.applications[id] = a
		return nil
	})
}

func (r *applicationRepo) list(match func(models.Application) bool, newestFirst bool) ([]*models.Application, error) {
	var out []*models.Application
	err := r.s.read(func(d *dataset) error {
		for _, a := range d.applications {
			if match(a) {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool {
		older := olderFirst(out[i].CreatedAt, out[k].CreatedAt, out[i].ID, out[k].ID)
		if newestFirst {
			return !older
		}
		return older
	})
	return out, err
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	return r.list(func(a models.Application) bool { return a.WorkerID == userID || a.ManagerID == userID }, true)
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	return r.list(func(a models.Application) bool { return a.JobID == jobID }, false)
}
