package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if !parseBody(c, &req) {
		return nil
	}

	logger.InfoContext(ctx, "User registration attempt", "email", req.Email, "username", req.Username)

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "User registration failed", "email", req.Email, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	token, err := h.userService.GenerateJWT(user)
	if err != nil {
		logger.ErrorContext(ctx, "Token generation failed", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID)

	return utils.CreatedResponse(c, dto.LoginResponse{
		Token: token,
		User:  dto.UserToUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if !parseBody(c, &req) {
		return nil
	}

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", req.Email, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return utils.SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User:  dto.UserToUserResponse(user),
	})
}

// Me ใช้ทั้ง /auth/me และ /me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()

	claims, ok := currentUser(c)
	if !ok {
		return nil
	}

	user, err := h.userService.GetUser(ctx, claims.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(user))
}
