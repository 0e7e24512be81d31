package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

// Protected ตรวจ JWT จาก Authorization header แล้วใส่ UserContext ใน locals
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
		}

		setUser(c, userCtx)
		return c.Next()
	}
}

// Optional ไม่บังคับ login แต่ถ้ามี token ที่ถูกต้องจะใส่ user ให้
func Optional(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			return c.Next()
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			return c.Next()
		}

		setUser(c, userCtx)
		return c.Next()
	}
}

// RequireAnyRole ต้องใช้หลัง Protected
func RequireAnyRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.ForbiddenResponse(c, "Insufficient permissions")
	}
}

func setUser(c *fiber.Ctx, userCtx *utils.UserContext) {
	c.Locals(utils.LocalsUserKey, userCtx)
	c.SetUserContext(logger.ContextWithUserID(c.UserContext(), userCtx.ID.String()))
}
