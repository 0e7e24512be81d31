package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	UserID    uuid.UUID       `json:"userId"`
	Document  json.RawMessage `json:"document"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}
