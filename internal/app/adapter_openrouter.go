package app

import (
	"context"
	"errors"
	"os"
	"strings"
)

const defaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterAdapter wraps the OpenRouter chat-completions gateway.
type OpenRouterAdapter struct {
	client *chatCompletionsClient
}

// NewOpenRouterAdapter fails fast when no API key is configured or present
// in the environment.
func NewOpenRouterAdapter(apiKey, model string) (*OpenRouterAdapter, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY is not set")
	}
	baseURL := os.Getenv("OPENROUTER_API_URL")
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &OpenRouterAdapter{
		client: newChatCompletionsClient(apiKey, model, baseURL),
	}, nil
}

func (a *OpenRouterAdapter) Name() string { return "openrouter" }

func (a *OpenRouterAdapter) Chat(ctx context.Context, prompt string) (string, error) {
	return a.client.complete(ctx, prompt)
}
