package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) UploadAvatar(c *fiber.Ctx) error {
	return h.uploadUserImage(c, services.ImageKindAvatar)
}

func (h *UploadHandler) UploadBanner(c *fiber.Ctx) error {
	return h.uploadUserImage(c, services.ImageKindBanner)
}

func (h *UploadHandler) uploadUserImage(c *fiber.Ctx, kind string) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	upload, ok := openUpload(c)
	if !ok {
		return nil
	}
	defer upload.Close()

	updated, err := h.uploadService.SetUserImage(ctx, user.ID, kind, upload.file, upload.filename, upload.contentType)
	if err != nil {
		logger.WarnContext(ctx, "Image upload failed", "kind", kind, "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	resp := dto.UploadResponse{URL: updated.AvatarURL, Key: updated.AvatarKey}
	if kind == services.ImageKindBanner {
		resp = dto.UploadResponse{URL: updated.BannerURL, Key: updated.BannerKey}
	}

	logger.InfoContext(ctx, "Image uploaded", "kind", kind, "user_id", user.ID, "key", resp.Key)
	return utils.SuccessResponse(c, resp)
}

// SignedURL GET /uploads/signed-url?key=
func (h *UploadHandler) SignedURL(c *fiber.Ctx) error {
	ctx := c.UserContext()

	key := c.Query("key")
	if key == "" {
		return utils.BadRequestResponse(c, "key is required")
	}

	url, expiresAt, err := h.uploadService.SignedURL(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "Signed URL failed", "key", key, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.SignedURLResponse{URL: url, ExpiresAt: expiresAt})
}

// File GET /uploads/file?key= stream ไฟล์ผ่าน API (ใช้กับ bucket ที่ไม่เปิด public)
func (h *UploadHandler) File(c *fiber.Ctx) error {
	ctx := c.UserContext()

	key := c.Query("key")
	if key == "" {
		return utils.BadRequestResponse(c, "key is required")
	}

	body, contentType, err := h.uploadService.OpenFile(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "Open file failed", "key", key, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(body)
}
