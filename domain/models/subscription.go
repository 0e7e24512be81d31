package models

import "time"

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// สถานะตาม payment gateway (Stripe subscription status)
const (
	SubscriptionNone       = "none"
	SubscriptionIncomplete = "incomplete"
	SubscriptionTrialing   = "trialing"
	SubscriptionActive     = "active"
	SubscriptionPastDue    = "past_due"
	SubscriptionCanceled   = "canceled"
)

// Subscription สถานะ subscription ของ user ไม่ได้เป็น table แยก เก็บบน users
type Subscription struct {
	Plan             string
	Status           string
	ExternalID       string
	ClientSecret     string // ให้ client ยืนยันการจ่ายเงินครั้งแรก
	CurrentPeriodEnd *time.Time
}

func SubscriptionGrantsAccess(status string) bool {
	return status == SubscriptionActive || status == SubscriptionTrialing
}
