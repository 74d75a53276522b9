package app

import (
	"context"
	"fmt"
	"strings"
)

// MockAdapter simulates a provider for tests and for running the UI without
// credentials. Responses are deterministic functions of the prompt.
type MockAdapter struct {
	// Err, when set, makes every Chat call fail with it.
	Err error
	// Respond overrides the canned keyword responses.
	Respond func(prompt string) string
}

func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

func (a *MockAdapter) Name() string { return "mock" }

func (a *MockAdapter) Chat(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a.Err != nil {
		return "", a.Err
	}
	if a.Respond != nil {
		return a.Respond(prompt), nil
	}
	return cannedResponse(prompt), nil
}

func cannedResponse(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "hello"):
		return "Hello! I am a mock model. Configure a provider API key to talk to a real one."
	case strings.Contains(lower, "review"):
		return "Mock review: the code looks reasonable. No real model was consulted."
	case strings.Contains(lower, "test"):
		return "Mock tests:\n\nfunc TestPlaceholder(t *testing.T) {}\n"
	case strings.Contains(lower, "generate"), strings.Contains(lower, "code"):
		return "// mock generated code\nfunc placeholder() {}\n"
	default:
		return fmt.Sprintf("Mock response (%d chars of prompt received).", len(prompt))
	}
}
