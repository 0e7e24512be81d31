package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"buildboard/domain/ports"
	"buildboard/pkg/logger"
)

const (
	maxOutputTokens = 1024
	defaultTemp     = 0.4

	systemPrompt = "You are a helpful assistant for a construction job board. " +
		"Help workers and site managers with job postings, scheduling, safety and trade questions. Keep answers short."
)

var ErrEmptyReply = errors.New("empty response from gemini")

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Reply ส่ง history + prompt ผ่าน chat session; turn "system" รวมเป็น system instruction
func (c *GeminiClient) Reply(ctx context.Context, history []ports.AssistantTurn, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	configureModel(model)

	system := []string{systemPrompt}
	session := model.StartChat()
	for _, turn := range history {
		text := strings.TrimSpace(turn.Content)
		if text == "" {
			continue
		}
		switch turn.Role {
		case "system":
			system = append(system, text)
		case "assistant":
			session.History = append(session.History, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(text)}})
		default:
			session.History = append(session.History, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(text)}})
		}
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(system, "\n"))}}

	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	reply, err := extractText(resp)
	if err != nil {
		return "", err
	}

	logger.DebugContext(ctx, "Gemini replied", "model", c.model, "turns", len(session.History), "reply_len", len(reply))
	return reply, nil
}

func configureModel(model *genai.GenerativeModel) {
	model.SetTemperature(defaultTemp)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(maxOutputTokens)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyReply
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	reply := strings.TrimSpace(b.String())
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

var _ ports.AssistantPort = (*GeminiClient)(nil)
