package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"buildboard/domain/ports"
	"buildboard/pkg/logger"
)

type StripeConfig struct {
	SecretKey string
	Timeout   time.Duration
}

type StripeGateway struct {
	api *client.API
}

// NewStripeGateway ปิด network retry ของ stripe-go: gateway ล้มเหลวแล้วตอบ error ทันที
func NewStripeGateway(cfg StripeConfig) (*StripeGateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	backendConfig := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	})

	return &StripeGateway{api: api}, nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, customer ports.PaymentCustomer) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(customer.Email),
		Name:  stripe.String(customer.Name),
	}
	params.Context = ctx

	c, err := g.api.Customers.New(params)
	if err != nil {
		return "", wrapStripeError("create customer", err)
	}
	logger.InfoContext(ctx, "Stripe customer created", "customer_id", c.ID)
	return c.ID, nil
}

// CreateSubscription สร้างแบบ default_incomplete: invoice แรกรอ client ยืนยันด้วย client secret
func (g *StripeGateway) CreateSubscription(ctx context.Context, customerID, priceID string) (*ports.PaymentSubscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.AddExpand("latest_invoice.payment_intent")
	params.Context = ctx

	sub, err := g.api.Subscriptions.New(params)
	if err != nil {
		return nil, wrapStripeError("create subscription", err)
	}
	logger.InfoContext(ctx, "Stripe subscription created", "subscription_id", sub.ID, "status", sub.Status)
	return toPaymentSubscription(sub), nil
}

func (g *StripeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*ports.PaymentSubscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, wrapStripeError("get subscription", err)
	}
	return toPaymentSubscription(sub), nil
}

func (g *StripeGateway) CancelSubscription(ctx context.Context, subscriptionID string) (*ports.PaymentSubscription, error) {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Cancel(subscriptionID, params)
	if err != nil {
		return nil, wrapStripeError("cancel subscription", err)
	}
	logger.InfoContext(ctx, "Stripe subscription canceled", "subscription_id", sub.ID)
	return toPaymentSubscription(sub), nil
}

func (g *StripeGateway) GetProviderName() string {
	return "stripe"
}

func toPaymentSubscription(sub *stripe.Subscription) *ports.PaymentSubscription {
	out := &ports.PaymentSubscription{
		ID:     sub.ID,
		Status: string(sub.Status),
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		out.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		out.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return out
}

// wrapStripeError เก็บ code/status ของ Stripe ไว้ใน log; ข้อความไม่ส่งต่อให้ client
func wrapStripeError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("stripe %s: status=%d type=%s code=%s: %w", op, stripeErr.HTTPStatusCode, stripeErr.Type, stripeErr.Code, err)
	}
	return fmt.Errorf("stripe %s: %w", op, err)
}
