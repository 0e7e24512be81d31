package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/domain/services"
	"buildboard/infrastructure/memory"
)

type stubPayment struct {
	customers int
	subs      map[string]*ports.PaymentSubscription
	priceUsed string
	fail      error
}

func newStubPayment() *stubPayment {
	return &stubPayment{subs: map[string]*ports.PaymentSubscription{}}
}

func (p *stubPayment) CreateCustomer(ctx context.Context, customer ports.PaymentCustomer) (string, error) {
	if p.fail != nil {
		return "", p.fail
	}
	p.customers++
	return fmt.Sprintf("cus_%d", p.customers), nil
}

func (p *stubPayment) CreateSubscription(ctx context.Context, customerID, priceID string) (*ports.PaymentSubscription, error) {
	if p.fail != nil {
		return nil, p.fail
	}
	p.priceUsed = priceID
	sub := &ports.PaymentSubscription{
		ID:               fmt.Sprintf("sub_%d", len(p.subs)+1),
		CustomerID:       customerID,
		Status:           models.SubscriptionIncomplete,
		ClientSecret:     "pi_secret",
		CurrentPeriodEnd: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	p.subs[sub.ID] = sub
	return sub, nil
}

func (p *stubPayment) GetSubscription(ctx context.Context, id string) (*ports.PaymentSubscription, error) {
	if p.fail != nil {
		return nil, p.fail
	}
	sub, ok := p.subs[id]
	if !ok {
		return nil, errors.New("no such subscription")
	}
	out := *sub
	out.ClientSecret = ""
	return &out, nil
}

func (p *stubPayment) CancelSubscription(ctx context.Context, id string) (*ports.PaymentSubscription, error) {
	if p.fail != nil {
		return nil, p.fail
	}
	sub, ok := p.subs[id]
	if !ok {
		return nil, errors.New("no such subscription")
	}
	sub.Status = models.SubscriptionCanceled
	out := *sub
	return &out, nil
}

func (p *stubPayment) GetProviderName() string { return "stub" }

var testPrices = map[string]string{models.PlanPro: "price_pro"}

func TestSubscriptionLifecycle(t *testing.T) {
	store := memory.NewStore()
	pay := newStubPayment()
	svc := NewSubscriptionService(store, pay, testPrices)
	maria := seedUser(t, store, "maria", models.RoleManager)
	ctx := context.Background()

	none, err := svc.GetSubscription(ctx, maria.ID)
	if err != nil {
		t.Fatalf("GetSubscription before subscribe: %v", err)
	}
	if none.Plan != models.PlanFree || none.Status != models.SubscriptionNone {
		t.Fatalf("initial subscription = %+v", none)
	}

	sub, err := svc.Subscribe(ctx, maria.ID, "Pro")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.Plan != models.PlanPro || sub.ClientSecret != "pi_secret" || sub.CurrentPeriodEnd == nil {
		t.Errorf("subscription = %+v", sub)
	}
	if pay.priceUsed != "price_pro" {
		t.Errorf("price = %q", pay.priceUsed)
	}

	stored, _ := store.Users().GetByID(ctx, maria.ID)
	if stored.BillingCustomerID != "cus_1" || stored.BillingSubscriptionID != sub.ExternalID || stored.Plan != models.PlanPro {
		t.Errorf("stored user billing = %q %q %q", stored.BillingCustomerID, stored.BillingSubscriptionID, stored.Plan)
	}
	if stored.CurrentPlan() != models.PlanFree {
		t.Error("incomplete subscription must not grant the plan yet")
	}

	// gateway ยืนยันการจ่ายแล้ว
	pay.subs[sub.ExternalID].Status = models.SubscriptionActive
	refreshed, err := svc.GetSubscription(ctx, maria.ID)
	if err != nil {
		t.Fatalf("GetSubscription: %v", err)
	}
	if refreshed.Status != models.SubscriptionActive || refreshed.Plan != models.PlanPro {
		t.Errorf("refreshed = %+v", refreshed)
	}
	stored, _ = store.Users().GetByID(ctx, maria.ID)
	if stored.CurrentPlan() != models.PlanPro {
		t.Errorf("current plan = %q, want pro", stored.CurrentPlan())
	}

	if _, err := svc.Subscribe(ctx, maria.ID, models.PlanPro); !errors.Is(err, services.ErrConflict) {
		t.Errorf("second subscribe: err = %v, want ErrConflict", err)
	}

	canceled, err := svc.CancelSubscription(ctx, maria.ID)
	if err != nil {
		t.Fatalf("CancelSubscription: %v", err)
	}
	if canceled.Status != models.SubscriptionCanceled || canceled.Plan != models.PlanFree {
		t.Errorf("canceled = %+v", canceled)
	}
	if _, err := svc.CancelSubscription(ctx, maria.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("cancel twice: err = %v, want ErrNotFound", err)
	}

	if _, err := svc.Subscribe(ctx, maria.ID, models.PlanPro); err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if pay.customers != 1 {
		t.Errorf("customers created = %d, want 1", pay.customers)
	}
}

func TestSubscribeRejectsUnknownPlan(t *testing.T) {
	store := memory.NewStore()
	svc := NewSubscriptionService(store, newStubPayment(), testPrices)
	maria := seedUser(t, store, "maria", models.RoleManager)

	if _, err := svc.Subscribe(context.Background(), maria.ID, "platinum"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestSubscriptionGatewayFailures(t *testing.T) {
	store := memory.NewStore()
	pay := newStubPayment()
	maria := seedUser(t, store, "maria", models.RoleManager)
	ctx := context.Background()

	pay.fail = errors.New("card network down")
	svc := NewSubscriptionService(store, pay, testPrices)
	_, err := svc.Subscribe(ctx, maria.ID, models.PlanPro)
	if err == nil {
		t.Fatal("gateway failure should surface")
	}
	for _, sentinel := range []error{services.ErrValidation, services.ErrNotFound, services.ErrConflict, services.ErrForbidden} {
		if errors.Is(err, sentinel) {
			t.Errorf("gateway failure mapped to %v", sentinel)
		}
	}
	stored, _ := store.Users().GetByID(ctx, maria.ID)
	if stored.BillingSubscriptionID != "" {
		t.Error("failed subscribe must not save a subscription")
	}

	unconfigured := NewSubscriptionService(store, nil, testPrices)
	if _, err := unconfigured.Subscribe(ctx, maria.ID, models.PlanPro); !errors.Is(err, errPaymentUnavailable) {
		t.Errorf("no gateway: err = %v", err)
	}
}
