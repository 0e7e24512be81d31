package services

import (
	"context"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

type SubscriptionService interface {
	// Subscribe เปิด subscription ใหม่; ClientSecret ใช้ยืนยันการจ่ายฝั่ง client
	Subscribe(ctx context.Context, userID uuid.UUID, plan string) (*models.Subscription, error)
	// GetSubscription ดึงสถานะล่าสุดจาก gateway แล้วบันทึกลง user
	GetSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	CancelSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
}
