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

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) repositories.ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

// CreateIfAbsent ใช้ ON CONFLICT DO NOTHING บน unique (job_id, worker_id)
func (r *ApplicationRepositoryImpl) CreateIfAbsent(ctx context.Context, app *models.Application) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}, {Name: "worker_id"}},
			DoNothing: true,
		}).
		Create(app)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ApplicationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND worker_id = ?", jobID, workerID).
		First(&app).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) GetByChatID(ctx context.Context, chatID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		First(&app).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("worker_id = ? OR manager_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}
