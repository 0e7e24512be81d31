package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
)

const (
	ImageKindAvatar = "avatar"
	ImageKindBanner = "banner"
)

type UploadService interface {
	// SetUserImage อัปโหลด avatar/banner ใหม่ แล้วลบไฟล์เก่า
	SetUserImage(ctx context.Context, userID uuid.UUID, kind string, file io.Reader, filename, contentType string) (*models.User, error)
	SignedURL(ctx context.Context, key string) (string, time.Time, error)
	// OpenFile เปิดไฟล์จาก storage ให้ handler stream ต่อ; caller ต้อง Close
	OpenFile(ctx context.Context, key string) (io.ReadCloser, string, error)
}
