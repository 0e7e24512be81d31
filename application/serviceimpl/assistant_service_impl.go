package serviceimpl

import (
	"context"
	"strings"
	"time"

	"buildboard/domain/dto"
	"buildboard/domain/ports"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
)

type AssistantServiceImpl struct {
	assistant ports.AssistantPort
	timeout   time.Duration
}

// NewAssistantService assistant เป็น nil ได้ (ไม่ได้ตั้ง API key) จะตอบ fallback ทุกครั้ง
func NewAssistantService(assistant ports.AssistantPort, timeout time.Duration) services.AssistantService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &AssistantServiceImpl{assistant: assistant, timeout: timeout}
}

func (s *AssistantServiceImpl) Chat(ctx context.Context, req *dto.AIChatRequest) string {
	history := make([]ports.AssistantTurn, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, ports.AssistantTurn{Role: m.Role, Content: m.Content})
	}

	// ไม่มี prompt แยก ใช้ข้อความ user ล่าสุดเป็น prompt
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Role == "user" && strings.TrimSpace(history[i].Content) != "" {
				prompt = history[i].Content
				history = history[:i]
				break
			}
		}
	}

	if s.assistant == nil || prompt == "" {
		logger.WarnContext(ctx, "Assistant unavailable or empty prompt, using fallback", "configured", s.assistant != nil)
		return services.AssistantFallbackReply
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		reply string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		reply, err := s.assistant.Reply(callCtx, history, prompt)
		done <- result{reply, err}
	}()

	select {
	case r := <-done:
		if r.err != nil || strings.TrimSpace(r.reply) == "" {
			logger.WarnContext(ctx, "Assistant call failed, using fallback", "error", r.err)
			return services.AssistantFallbackReply
		}
		return r.reply
	case <-callCtx.Done():
		logger.WarnContext(ctx, "Assistant call timed out, using fallback", "timeout", s.timeout)
		return services.AssistantFallbackReply
	}
}
