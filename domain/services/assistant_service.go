package services

import (
	"context"

	"buildboard/domain/dto"
)

// AssistantFallbackReply ตอบแทนเมื่อ AI ล้มเหลว timeout หรือไม่ได้ตั้งค่า
const AssistantFallbackReply = "Sorry, I couldn't answer that right now. Please try again in a moment."

type AssistantService interface {
	// Chat ไม่คืน error จาก upstream: ล้มเหลวทุกกรณีได้ AssistantFallbackReply
	Chat(ctx context.Context, req *dto.AIChatRequest) string
}
