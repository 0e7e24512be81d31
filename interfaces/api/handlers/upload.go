package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type multipartUpload struct {
	file        multipart.File
	filename    string
	contentType string
}

func (u *multipartUpload) Close() {
	_ = u.file.Close()
}

// openUpload อ่าน multipart field "file"; ok=false แปลว่าตอบ 400 ไปแล้ว
func openUpload(c *fiber.Ctx) (*multipartUpload, bool) {
	ctx := c.UserContext()

	header, err := c.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "No file provided", "error", err)
		_ = utils.BadRequestResponse(c, "No file provided")
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		logger.WarnContext(ctx, "Failed to open uploaded file", "error", err)
		_ = utils.BadRequestResponse(c, "Failed to read uploaded file")
		return nil, false
	}

	return &multipartUpload{
		file:        file,
		filename:    header.Filename,
		contentType: header.Header.Get("Content-Type"),
	}, true
}
