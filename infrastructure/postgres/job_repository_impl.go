package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) repositories.JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &job, nil
}

func (r *JobRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.JobWorker{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repositories.ErrRecordNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) List(ctx context.Context, filter repositories.JobFilter, offset, limit int) ([]*models.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("is_private = ? OR owner_id = ?", false, filter.ViewerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Skill != "" {
		query = query.Where("? = ANY(skills)", filter.Skill)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR site ILIKE ? OR location ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []*models.Job
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) AddWorker(ctx context.Context, jobID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.JobWorker{JobID: jobID, UserID: userID, CreatedAt: time.Now()}).Error
}

func (r *JobRepositoryImpl) ListWorkerIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.JobWorker{}).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *JobRepositoryImpl) MarkStarted(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("status = ? AND start_date IS NOT NULL AND start_date <= ?", models.JobStatusOpen, now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Updates(map[string]any{"status": models.JobStatusInProgress, "updated_at": now})
	return res.RowsAffected, res.Error
}

func (r *JobRepositoryImpl) MarkCompleted(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("status <> ? AND end_date IS NOT NULL AND end_date < ?", models.JobStatusCompleted, now).
		Updates(map[string]any{"status": models.JobStatusCompleted, "updated_at": now})
	return res.RowsAffected, res.Error
}
