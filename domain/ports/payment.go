package ports

import (
	"context"
	"time"
)

type PaymentCustomer struct {
	Email string
	Name  string
}

type PaymentSubscription struct {
	ID               string
	CustomerID       string
	Status           string
	ClientSecret     string
	CurrentPeriodEnd time.Time
}

// PaymentPort ตัวเชื่อม payment gateway (Stripe)
type PaymentPort interface {
	CreateCustomer(ctx context.Context, customer PaymentCustomer) (string, error)
	CreateSubscription(ctx context.Context, customerID, priceID string) (*PaymentSubscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*PaymentSubscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (*PaymentSubscription, error)
	GetProviderName() string
}
