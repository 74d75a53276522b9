package app

import (
	"context"
	"os"
	"strings"
	"time"
)

const (
	defaultLocalURL = "http://127.0.0.1:8080/v1/chat/completions"

	// Local inference has no external side effects, so each attempt is
	// independently safe to repeat.
	localChatAttempts = 3
	localChatBackoff  = 2 * time.Second
)

// LocalAdapter talks to a llama-server (or any OpenAI-compatible runtime) on
// localhost. Calls are retried with a fixed backoff because a local server
// is often still loading the model when the first request lands.
type LocalAdapter struct {
	client *chatCompletionsClient
}

func NewLocalAdapter(baseURL, model string) *LocalAdapter {
	if baseURL == "" {
		baseURL = os.Getenv("BLONDE_LOCAL_API_URL")
	}
	if baseURL == "" {
		baseURL = defaultLocalURL
	}
	if strings.TrimSpace(model) == "" {
		model = "default"
	}
	return &LocalAdapter{
		client: newChatCompletionsClient("", model, baseURL),
	}
}

func (a *LocalAdapter) Name() string { return "local" }

func (a *LocalAdapter) Chat(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < localChatAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(localChatBackoff):
			}
		}
		out, err := a.client.complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}
