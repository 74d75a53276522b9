package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// chatCompletionsClient speaks the OpenAI-style chat-completions wire format
// shared by OpenRouter, OpenAI, and llama-server.
type chatCompletionsClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

type chatCompletionsRequest struct {
	Model       string                   `json:"model"`
	Messages    []chatCompletionsMessage `json:"messages"`
	Temperature float64                  `json:"temperature"`
}

type chatCompletionsMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type,omitempty"`
	} `json:"error,omitempty"`
}

func newChatCompletionsClient(apiKey, model, baseURL string) *chatCompletionsClient {
	return &chatCompletionsClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *chatCompletionsClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionsRequest{
		Model:       c.model,
		Messages:    []chatCompletionsMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	// Gateways answer HTML for bad keys or unknown models.
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", errors.New("received HTML response, check API key or model")
	}

	if resp.StatusCode >= 300 {
		var errResp chatCompletionsResponse
		_ = json.Unmarshal(bodyBytes, &errResp)
		if errResp.Error != nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("api error: status %d, message: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("api error: status %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("invalid api response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("unexpected response structure: %s", string(bodyBytes))
	}
	return parsed.Choices[0].Message.Content, nil
}
