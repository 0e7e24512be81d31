package payment

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v76"
)

func TestToPaymentSubscription(t *testing.T) {
	end := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	sub := &stripe.Subscription{
		ID:               "sub_123",
		Status:           stripe.SubscriptionStatusIncomplete,
		Customer:         &stripe.Customer{ID: "cus_9"},
		CurrentPeriodEnd: end.Unix(),
		LatestInvoice: &stripe.Invoice{
			PaymentIntent: &stripe.PaymentIntent{ClientSecret: "pi_secret_abc"},
		},
	}

	got := toPaymentSubscription(sub)
	if got.ID != "sub_123" || got.CustomerID != "cus_9" || got.Status != "incomplete" {
		t.Errorf("subscription = %+v", got)
	}
	if got.ClientSecret != "pi_secret_abc" || !got.CurrentPeriodEnd.Equal(end) {
		t.Errorf("secret/period = %q %s", got.ClientSecret, got.CurrentPeriodEnd)
	}

	bare := toPaymentSubscription(&stripe.Subscription{ID: "sub_1", Status: stripe.SubscriptionStatusActive})
	if bare.ClientSecret != "" || !bare.CurrentPeriodEnd.IsZero() || bare.CustomerID != "" {
		t.Errorf("bare subscription = %+v", bare)
	}
}

func TestWrapStripeErrorKeepsGatewayDetail(t *testing.T) {
	apiErr := &stripe.Error{HTTPStatusCode: 402, Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeCardDeclined, Msg: "declined"}

	err := wrapStripeError("create subscription", apiErr)
	if !errors.Is(err, apiErr) {
		t.Error("wrapped error should unwrap to the stripe error")
	}
	for _, want := range []string{"create subscription", "status=402", "card_declined"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestNewStripeGatewayRequiresKey(t *testing.T) {
	if _, err := NewStripeGateway(StripeConfig{}); err == nil {
		t.Error("expected error without secret key")
	}
	g, err := NewStripeGateway(StripeConfig{SecretKey: "sk_test_123"})
	if err != nil || g.GetProviderName() != "stripe" {
		t.Errorf("gateway = %v, err = %v", g, err)
	}
}
