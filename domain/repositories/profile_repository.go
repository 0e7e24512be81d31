package repositories

import (
	"context"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	// Upsert เขียนทับทั้งเอกสาร
	Upsert(ctx context.Context, profile *models.Profile) error
}
