package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type UploadServiceImpl struct {
	store        repositories.Store
	storage      ports.StoragePort
	signedURLTTL time.Duration
}

func NewUploadService(store repositories.Store, storage ports.StoragePort, signedURLTTL time.Duration) services.UploadService {
	if signedURLTTL <= 0 {
		signedURLTTL = 15 * time.Minute
	}
	return &UploadServiceImpl{
		store:        store,
		storage:      storage,
		signedURLTTL: signedURLTTL,
	}
}

// SetUserImage อัปโหลดรูปใหม่ก่อน, บันทึก URL, แล้วค่อยลบรูปเก่า
func (s *UploadServiceImpl) SetUserImage(ctx context.Context, userID uuid.UUID, kind string, file io.Reader, filename, contentType string) (*models.User, error) {
	var urlColumn, keyColumn, folder string
	switch kind {
	case services.ImageKindAvatar:
		urlColumn, keyColumn, folder = "avatar_url", "avatar_key", "avatars"
	case services.ImageKindBanner:
		urlColumn, keyColumn, folder = "banner_url", "banner_key", "banners"
	default:
		return nil, fmt.Errorf("%w: unknown image kind %q", services.ErrValidation, kind)
	}
	if err := checkImageContentType(contentType); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	previousKey := user.AvatarKey
	if kind == services.ImageKindBanner {
		previousKey = user.BannerKey
	}

	key := utils.BuildObjectKey(folder, userID.String(), filename)
	url, err := s.storage.UploadFile(file, key, contentType)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to upload image", "user_id", userID, "kind", kind, "error", err)
		return nil, err
	}

	if err := s.store.Users().UpdateFields(ctx, userID, map[string]any{urlColumn: url, keyColumn: key}); err != nil {
		logger.ErrorContext(ctx, "Failed to save image reference", "user_id", userID, "kind", kind, "error", err)
		if delErr := s.storage.DeleteFile(key); delErr != nil {
			logger.WarnContext(ctx, "Failed to remove unreferenced upload", "key", key, "error", delErr)
		}
		return nil, err
	}

	if previousKey != "" && previousKey != key {
		if err := s.storage.DeleteFile(previousKey); err != nil {
			logger.WarnContext(ctx, "Failed to delete previous image", "key", previousKey, "error", err)
		}
	}

	logger.InfoContext(ctx, "User image replaced", "user_id", userID, "kind", kind, "provider", s.storage.GetProviderName())
	return s.store.Users().GetByID(ctx, userID)
}

func (s *UploadServiceImpl) SignedURL(ctx context.Context, key string) (string, time.Time, error) {
	cleaned, err := utils.ValidateObjectKey(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", services.ErrValidation, err)
	}

	expiresAt := time.Now().Add(s.signedURLTTL)
	url, err := s.storage.GetSignedURL(cleaned, s.signedURLTTL)
	if err != nil {
		logger.WarnContext(ctx, "Failed to sign object URL", "key", cleaned, "error", err)
		return "", time.Time{}, fmt.Errorf("%w: object not found", services.ErrNotFound)
	}
	return url, expiresAt, nil
}

func (s *UploadServiceImpl) OpenFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	cleaned, err := utils.ValidateObjectKey(key)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", services.ErrValidation, err)
	}

	body, contentType, err := s.storage.GetFileContent(cleaned)
	if err != nil {
		logger.WarnContext(ctx, "Failed to open object", "key", cleaned, "provider", s.storage.GetProviderName(), "error", err)
		return nil, "", fmt.Errorf("%w: object not found", services.ErrNotFound)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, contentType, nil
}

func checkImageContentType(contentType string) error {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return fmt.Errorf("%w: only image uploads are allowed", services.ErrValidation)
	}
	return nil
}
