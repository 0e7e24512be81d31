package dto

type AIChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required,max=8000"`
}

type AIChatRequest struct {
	Messages []AIChatMessage `json:"messages" validate:"omitempty,max=50,dive"`
	Prompt   string          `json:"prompt" validate:"omitempty,max=8000"`
}

type AIChatResponse struct {
	Reply string `json:"reply"`
}
