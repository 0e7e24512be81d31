package ports

import "context"

type AssistantTurn struct {
	Role    string // user, assistant, system
	Content string
}

// AssistantPort ตัวเชื่อม LLM ภายนอก
type AssistantPort interface {
	Reply(ctx context.Context, history []AssistantTurn, prompt string) (string, error)
}
