package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	PutProfile(ctx context.Context, userID, actorID uuid.UUID, document json.RawMessage) (*models.Profile, error)
}
