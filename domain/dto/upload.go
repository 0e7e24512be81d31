package dto

import "time"

type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type SignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
