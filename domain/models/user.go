package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleWorker  = "worker"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	FirstName string
	LastName  string
	AvatarURL string
	AvatarKey string // storage key ของ avatar ปัจจุบัน ใช้ลบของเก่าตอนเปลี่ยน
	BannerURL string
	BannerKey string
	Role      string `gorm:"size:20;default:'worker'"` // worker, manager, admin
	IsActive  bool   `gorm:"default:true"`

	// subscription ผ่าน payment gateway; ว่าง = free
	Plan                  string `gorm:"size:20;default:'free'"`
	SubscriptionStatus    string `gorm:"size:30"`
	BillingCustomerID     string `gorm:"index"`
	BillingSubscriptionID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanPostJobs manager กับ admin สร้าง job ได้
func (u *User) CanPostJobs() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// DisplayName ชื่อที่ใช้ใน system message, fallback เป็น username
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// CurrentPlan plan ที่มีผลอยู่ตอนนี้ (ยกเลิกหรือจ่ายไม่ผ่าน = free)
func (u *User) CurrentPlan() string {
	if u.Plan == "" || !SubscriptionGrantsAccess(u.SubscriptionStatus) {
		return PlanFree
	}
	return u.Plan
}
