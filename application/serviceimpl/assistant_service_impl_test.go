package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildboard/domain/dto"
	"buildboard/domain/ports"
	"buildboard/domain/services"
)

type fakeAssistant struct {
	reply   string
	err     error
	delay   time.Duration
	history []ports.AssistantTurn
	prompt  string
}

func (f *fakeAssistant) Reply(ctx context.Context, history []ports.AssistantTurn, prompt string) (string, error) {
	f.history, f.prompt = history, prompt
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func TestAssistantChat(t *testing.T) {
	req := &dto.AIChatRequest{Messages: []dto.AIChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "How deep should footings be?"},
	}}

	tests := []struct {
		name      string
		assistant *fakeAssistant
		timeout   time.Duration
		want      string
	}{
		{name: "reply passes through", assistant: &fakeAssistant{reply: "Below frost line."}, timeout: time.Second, want: "Below frost line."},
		{name: "upstream error falls back", assistant: &fakeAssistant{err: errors.New("quota")}, timeout: time.Second, want: services.AssistantFallbackReply},
		{name: "empty reply falls back", assistant: &fakeAssistant{reply: "  "}, timeout: time.Second, want: services.AssistantFallbackReply},
		{name: "timeout falls back", assistant: &fakeAssistant{reply: "late", delay: time.Second}, timeout: 20 * time.Millisecond, want: services.AssistantFallbackReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAssistantService(tt.assistant, tt.timeout)
			if got := svc.Chat(context.Background(), req); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssistantUsesLastUserMessageAsPrompt(t *testing.T) {
	fake := &fakeAssistant{reply: "ok"}
	svc := NewAssistantService(fake, time.Second)

	svc.Chat(context.Background(), &dto.AIChatRequest{Messages: []dto.AIChatMessage{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "answer"},
		{Role: "user", Content: "second"},
	}})

	if fake.prompt != "second" || len(fake.history) != 2 {
		t.Errorf("prompt = %q, history = %d", fake.prompt, len(fake.history))
	}
}

func TestAssistantWithoutClient(t *testing.T) {
	svc := NewAssistantService(nil, time.Second)
	if got := svc.Chat(context.Background(), &dto.AIChatRequest{Prompt: "hi"}); got != services.AssistantFallbackReply {
		t.Errorf("reply = %q", got)
	}
}
