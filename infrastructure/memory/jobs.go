package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type jobRepo struct{ s *Store }

func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	return r.s.write(func(d *dataset) error {
		ensureID(&job.ID)
		now := d.now()
		if job.CreatedAt.IsZero() {
			job.CreatedAt = now
		}
		job.UpdatedAt = now
		if job.Status == "" {
			job.Status = models.JobStatusOpen
		}
		d.jobs[job.ID] = *job
		return nil
	})
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var out *models.Job
	err := r.s.read(func(d *dataset) error {
		j, ok := d.jobs[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		out = &j
		return nil
	})
	return out, err
}

func (r *jobRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.s.write(func(d *dataset) error {
		j, ok := d.jobs[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		for col, v := range fields {
			var err error
			switch col {
			case "title":
				j.Title, err = asString(col, v)
			case "site":
				j.Site, err = asString(col, v)
			case "start_date":
				j.StartDate, err = asTimePtr(col, v)
			case "end_date":
				j.EndDate, err = asTimePtr(col, v)
			case "schedule":
				j.Schedule, err = asString(col, v)
			case "status":
				j.Status, err = asString(col, v)
			case "location":
				j.Location, err = asString(col, v)
			case "pay_rate":
				j.PayRate, err = asString(col, v)
			case "description":
				j.Description, err = asString(col, v)
			case "image_url":
				j.ImageURL, err = asString(col, v)
			case "image_key":
				j.ImageKey, err = asString(col, v)
			case "skills":
				j.Skills, err = asStrings(col, v)
			case "latitude":
				j.Latitude, err = asFloatPtr(col, v)
			case "longitude":
				j.Longitude, err = asFloatPtr(col, v)
			case "is_private":
				j.IsPrivate, err = asBool(col, v)
			case "updated_at":
			default:
				err = unknownColumn("jobs", col)
			}
			if err != nil {
				return err
			}
		}
		j.UpdatedAt = d.now()
		d.jobs[id] = j
		return nil
	})
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.jobs[id]; !ok {
			return repositories.ErrRecordNotFound
		}
		delete(d.jobs, id)
		for k := range d.jobWorkers {
			if k.a == id {
				delete(d.jobWorkers, k)
			}
		}
		return nil
	})
}

func (r *jobRepo) List(ctx context.Context, filter repositories.JobFilter, offset, limit int) ([]*models.Job, int64, error) {
	var matched []*models.Job
	err := r.s.read(func(d *dataset) error {
		for _, j := range d.jobs {
			if !matchesJob(j, filter) {
				continue
			}
			j := j
			matched = append(matched, &j)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(matched, func(i, k int) bool {
		a, b := matched[i], matched[k]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return lessUUID(b.ID, a.ID)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []*models.Job{}, total, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

func matchesJob(j models.Job, f repositories.JobFilter) bool {
	if !j.VisibleTo(f.ViewerID) {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.OwnerID != nil && j.OwnerID != *f.OwnerID {
		return false
	}
	if f.Skill != "" {
		found := false
		for _, s := range j.Skills {
			if s == f.Skill {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(j.Title), q) &&
			!strings.Contains(strings.ToLower(j.Site), q) &&
			!strings.Contains(strings.ToLower(j.Location), q) {
			return false
		}
	}
	return true
}

func (r *jobRepo) AddWorker(ctx context.Context, jobID, userID uuid.UUID) error {
	return r.s.write(func(d *dataset) error {
		key := pairKey{jobID, userID}
		if _, exists := d.jobWorkers[key]; exists {
			return nil
		}
		d.jobWorkers[key] = models.JobWorker{JobID: jobID, UserID: userID, CreatedAt: d.now()}
		return nil
	})
}

func (r *jobRepo) ListWorkerIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	var rows []models.JobWorker
	err := r.s.read(func(d *dataset) error {
		for k, w := range d.jobWorkers {
			if k.a == jobID {
				rows = append(rows, w)
			}
		}
		return nil
	})
	sort.Slice(rows, func(i, k int) bool {
		return olderFirst(rows[i].CreatedAt, rows[k].CreatedAt, rows[i].UserID, rows[k].UserID)
	})
	ids := make([]uuid.UUID, 0, len(rows))
	for _, w := range rows {
		ids = append(ids, w.UserID)
	}
	return ids, err
}

func (r *jobRepo) MarkStarted(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.s.write(func(d *dataset) error {
		for id, j := range d.jobs {
			if j.Status != models.JobStatusOpen || j.StartDate == nil || j.StartDate.After(now) {
				continue
			}
			if j.EndDate != nil && j.EndDate.Before(now) {
				continue
			}
			j.Status = models.JobStatusInProgress
			j.UpdatedAt = d.now()
			d.jobs[id] = j
			n++
		}
		return nil
	})
	return n, err
}

func (r *jobRepo) MarkCompleted(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.s.write(func(d *dataset) error {
		for id, j := range d.jobs {
			if j.Status == models.JobStatusCompleted || j.EndDate == nil || !j.EndDate.Before(now) {
				continue
			}
			j.Status = models.JobStatusCompleted
			j.UpdatedAt = d.now()
			d.jobs[id] = j
			n++
		}
		return nil
	})
	return n, err
}
