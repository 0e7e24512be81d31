package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/utils"
)

type AIHandler struct {
	assistantService services.AssistantService
}

func NewAIHandler(assistantService services.AssistantService) *AIHandler {
	return &AIHandler{assistantService: assistantService}
}

// Chat ตอบ 200 เสมอเมื่อ body ถูกต้อง; upstream ล้มเหลวได้ข้อความขอโทษแทน
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.AIChatRequest
	if !parseBody(c, &req) {
		return nil
	}

	reply := h.assistantService.Chat(c.UserContext(), &req)
	return utils.SuccessResponse(c, dto.AIChatResponse{Reply: reply})
}
