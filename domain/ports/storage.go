package ports

import (
	"io"
	"time"
)

// StoragePort interface ของ blob storage (local, MinIO/S3, R2)
type StoragePort interface {
	// UploadFile อัปโหลดไฟล์ไปที่ path, return public URL
	UploadFile(file io.Reader, path string, contentType string) (string, error)

	// DeleteFile ลบไฟล์ ไม่มีไฟล์อยู่แล้วไม่ถือเป็น error
	DeleteFile(path string) error

	// DeleteFolder ลบไฟล์ทั้งหมดที่ขึ้นต้นด้วย prefix
	DeleteFolder(prefix string) error

	GetFileURL(path string) string

	// GetFileContent return io.ReadCloser, contentType, error
	GetFileContent(path string) (io.ReadCloser, string, error)

	// GetSignedURL URL อ่านไฟล์แบบมีอายุ
	GetSignedURL(path string, ttl time.Duration) (string, error)

	GetProviderName() string
}
