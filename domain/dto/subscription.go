package dto

import "time"

type CreateSubscriptionRequest struct {
	Plan string `json:"plan" validate:"required,max=20"`
}

type SubscriptionResponse struct {
	Plan             string     `json:"plan"`
	Status           string     `json:"status"`
	ClientSecret     string     `json:"clientSecret,omitempty"`
	CurrentPeriodEnd *time.Time `json:"currentPeriodEnd,omitempty"`
}
