package app

import (
	"context"
	"errors"
	"os"
	"strings"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIAdapter wraps the OpenAI chat-completions API.
type OpenAIAdapter struct {
	client *chatCompletionsClient
}

func NewOpenAIAdapter(apiKey, model string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4"
	}
	// OpenAI models are unprefixed; strip a router-style "openai/" prefix so
	// the configured model works across both gateways.
	model = strings.TrimPrefix(model, "openai/")
	return &OpenAIAdapter{
		client: newChatCompletionsClient(apiKey, model, defaultOpenAIURL),
	}, nil
}

func (a *OpenAIAdapter) Name() string { return "openai" }

func (a *OpenAIAdapter) Chat(ctx context.Context, prompt string) (string, error) {
	return a.client.complete(ctx, prompt)
}
