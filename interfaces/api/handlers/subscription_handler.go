package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Subscribe POST /subscriptions {plan}; gateway ล้มเหลว = 500 ข้อความกลางๆ
func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	var req dto.CreateSubscriptionRequest
	if !parseBody(c, &req) {
		return nil
	}

	sub, err := h.subscriptionService.Subscribe(ctx, user.ID, req.Plan)
	if err != nil {
		logger.WarnContext(ctx, "Subscribe failed", "user_id", user.ID, "plan", req.Plan, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, dto.SubscriptionToResponse(sub))
}

func (h *SubscriptionHandler) GetMine(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	sub, err := h.subscriptionService.GetSubscription(ctx, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.SubscriptionToResponse(sub))
}

func (h *SubscriptionHandler) CancelMine(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	sub, err := h.subscriptionService.CancelSubscription(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Cancel subscription failed", "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.SubscriptionToResponse(sub))
}
