package utils

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"buildboard/domain/services"
	"buildboard/pkg/logger"
)

// ServiceErrorResponse map sentinel error จาก service เป็น HTTP status; error อื่น = 500 ข้อความกลางๆ
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return ErrorResponse(c, fiber.StatusBadRequest, ErrCodeValidation, serviceMessage(err, services.ErrValidation), nil)
	case errors.Is(err, services.ErrUnauthorized):
		return UnauthorizedResponse(c, serviceMessage(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrForbidden):
		return ForbiddenResponse(c, serviceMessage(err, services.ErrForbidden))
	case errors.Is(err, services.ErrNotFound):
		return NotFoundResponse(c, serviceMessage(err, services.ErrNotFound))
	case errors.Is(err, services.ErrConflict):
		return ConflictResponse(c, serviceMessage(err, services.ErrConflict))
	case errors.Is(err, services.ErrRateLimited):
		return TooManyRequestsResponse(c, serviceMessage(err, services.ErrRateLimited))
	}

	logger.ErrorContext(c.UserContext(), "Unhandled service error", "path", c.Path(), "error", err)
	return InternalServerErrorResponse(c)
}

// serviceMessage ตัด prefix ของ sentinel ออก: "not found: job not found" -> "job not found"
func serviceMessage(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != "" {
		return trimmed
	}
	return msg
}
