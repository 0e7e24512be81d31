package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Site        string     `json:"site" validate:"required,min=1,max=200"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Location    string     `json:"location" validate:"omitempty,max=300"`
	PayRate     string     `json:"payRate" validate:"omitempty,max=100"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Skills      []string   `json:"skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	Latitude    *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude" validate:"omitempty,longitude"`
	IsPrivate   bool       `json:"isPrivate"`
}

// UpdateJobRequest ทุก field เป็น pointer: nil = ไม่แตะ column นั้น
type UpdateJobRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Site        *string    `json:"site" validate:"omitempty,min=1,max=200"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status" validate:"omitempty,oneof=open in_progress completed"`
	Location    *string    `json:"location" validate:"omitempty,max=300"`
	PayRate     *string    `json:"payRate" validate:"omitempty,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Skills      *[]string  `json:"skills" validate:"omitempty,max=30"`
	Latitude    *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude" validate:"omitempty,longitude"`
	IsPrivate   *bool      `json:"isPrivate"`
}

type JobFilterRequest struct {
	Status  string `query:"status" validate:"omitempty,oneof=open in_progress completed"`
	OwnerID string `query:"ownerId" validate:"omitempty,uuid"`
	Skill   string `query:"skill" validate:"omitempty,max=50"`
	Q       string `query:"q" validate:"omitempty,max=100"`
	PaginationQuery
}

type JobResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Site        string     `json:"site"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Schedule    string     `json:"schedule"`
	Status      string     `json:"status"`
	Location    string     `json:"location"`
	PayRate     string     `json:"payRate"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Skills      []string   `json:"skills"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	IsPrivate   bool       `json:"isPrivate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type JobWorkerResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}
