package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
)

var errPaymentUnavailable = errors.New("payment gateway not configured")

type SubscriptionServiceImpl struct {
	store   repositories.Store
	payment ports.PaymentPort
	prices  map[string]string // plan -> gateway price id
}

// NewSubscriptionService payment = nil เมื่อไม่ได้ตั้งค่า gateway
func NewSubscriptionService(store repositories.Store, payment ports.PaymentPort, prices map[string]string) services.SubscriptionService {
	return &SubscriptionServiceImpl{
		store:   store,
		payment: payment,
		prices:  prices,
	}
}

func (s *SubscriptionServiceImpl) Subscribe(ctx context.Context, userID uuid.UUID, plan string) (*models.Subscription, error) {
	plan = strings.ToLower(strings.TrimSpace(plan))
	priceID, ok := s.prices[plan]
	if !ok || priceID == "" {
		return nil, fmt.Errorf("%w: unknown plan %q", services.ErrValidation, plan)
	}
	if s.payment == nil {
		return nil, errPaymentUnavailable
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	if user.BillingSubscriptionID != "" && models.SubscriptionGrantsAccess(user.SubscriptionStatus) {
		return nil, fmt.Errorf("%w: already subscribed to %s", services.ErrConflict, user.Plan)
	}

	customerID := user.BillingCustomerID
	if customerID == "" {
		customerID, err = s.payment.CreateCustomer(ctx, ports.PaymentCustomer{Email: user.Email, Name: user.DisplayName()})
		if err != nil {
			logger.ErrorContext(ctx, "Payment customer creation failed", "user_id", userID, "provider", s.payment.GetProviderName(), "error", err)
			return nil, err
		}
		// เก็บ customer id ทันที ครั้งหน้าไม่ต้องสร้างซ้ำแม้ subscription จะล้มเหลว
		if err := s.store.Users().UpdateFields(ctx, userID, map[string]any{"billing_customer_id": customerID}); err != nil {
			return nil, fmt.Errorf("save billing customer: %w", err)
		}
	}

	sub, err := s.payment.CreateSubscription(ctx, customerID, priceID)
	if err != nil {
		logger.ErrorContext(ctx, "Payment subscription creation failed", "user_id", userID, "plan", plan, "error", err)
		return nil, err
	}

	if err := s.store.Users().UpdateFields(ctx, userID, map[string]any{
		"plan":                    plan,
		"subscription_status":     sub.Status,
		"billing_subscription_id": sub.ID,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to save subscription", "user_id", userID, "subscription_id", sub.ID, "error", err)
		return nil, fmt.Errorf("save subscription: %w", err)
	}

	logger.InfoContext(ctx, "Subscription created", "user_id", userID, "plan", plan, "status", sub.Status)
	return toSubscription(plan, sub), nil
}

func (s *SubscriptionServiceImpl) GetSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	if user.BillingSubscriptionID == "" {
		return &models.Subscription{Plan: models.PlanFree, Status: models.SubscriptionNone}, nil
	}
	if s.payment == nil {
		return nil, errPaymentUnavailable
	}

	sub, err := s.payment.GetSubscription(ctx, user.BillingSubscriptionID)
	if err != nil {
		logger.ErrorContext(ctx, "Payment subscription lookup failed", "user_id", userID, "subscription_id", user.BillingSubscriptionID, "error", err)
		return nil, err
	}

	if sub.Status != user.SubscriptionStatus {
		if err := s.store.Users().UpdateFields(ctx, userID, map[string]any{"subscription_status": sub.Status}); err != nil {
			return nil, fmt.Errorf("save subscription status: %w", err)
		}
		logger.InfoContext(ctx, "Subscription status changed", "user_id", userID, "from", user.SubscriptionStatus, "to", sub.Status)
	}
	return toSubscription(user.Plan, sub), nil
}

func (s *SubscriptionServiceImpl) CancelSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	if user.BillingSubscriptionID == "" || user.SubscriptionStatus == models.SubscriptionCanceled {
		return nil, fmt.Errorf("%w: no active subscription", services.ErrNotFound)
	}
	if s.payment == nil {
		return nil, errPaymentUnavailable
	}

	sub, err := s.payment.CancelSubscription(ctx, user.BillingSubscriptionID)
	if err != nil {
		logger.ErrorContext(ctx, "Payment subscription cancel failed", "user_id", userID, "subscription_id", user.BillingSubscriptionID, "error", err)
		return nil, err
	}

	if err := s.store.Users().UpdateFields(ctx, userID, map[string]any{"subscription_status": sub.Status}); err != nil {
		return nil, fmt.Errorf("save subscription status: %w", err)
	}

	logger.InfoContext(ctx, "Subscription canceled", "user_id", userID, "subscription_id", sub.ID)
	return toSubscription(user.Plan, sub), nil
}

// toSubscription plan ที่ไม่ได้สิทธิ์แล้ว (ยกเลิก/ค้างจ่าย) แสดงเป็น free
func toSubscription(plan string, sub *ports.PaymentSubscription) *models.Subscription {
	out := &models.Subscription{
		Plan:         plan,
		Status:       sub.Status,
		ExternalID:   sub.ID,
		ClientSecret: sub.ClientSecret,
	}
	if !models.SubscriptionGrantsAccess(sub.Status) && sub.Status != models.SubscriptionIncomplete {
		out.Plan = models.PlanFree
	}
	if !sub.CurrentPeriodEnd.IsZero() {
		end := sub.CurrentPeriodEnd
		out.CurrentPeriodEnd = &end
	}
	return out
}
