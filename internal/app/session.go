package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const sessionSchemaVersion = "2.0"

// ChatMessage is one turn in a session's chat history.
type ChatMessage struct {
	Role      string `json:"role"` // user|assistant
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ContextUsage struct {
	TotalTokens int     `json:"total_tokens"`
	Percentage  float64 `json:"percentage"`
}

type Cost struct {
	TotalUSD float64 `json:"total_usd"`
}

type SessionMetadata struct {
	Version  string `json:"version"`
	Archived bool   `json:"archived"`
}

// Session is one persisted conversation: identity, backend in use, ordered
// message log, files touched, and running usage/cost counters. It serializes
// to a single JSON document named by its id.
type Session struct {
	SessionID    string          `json:"session_id"`
	Name         string          `json:"name"`
	CreatedAt    string          `json:"created_at"`
	Provider     string          `json:"provider"`
	Model        string          `json:"model"`
	ChatHistory  []ChatMessage   `json:"chat_history"`
	FilesEdited  []string        `json:"files_edited"`
	ContextUsage ContextUsage    `json:"context_usage"`
	Cost         Cost            `json:"cost"`
	Metadata     SessionMetadata `json:"metadata"`
}

// NewSessionID returns a fresh random id: a v4 UUID with the dashes stripped.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func NewSession(provider, model string) *Session {
	id := NewSessionID()
	return &Session{
		SessionID:   id,
		Name:        fmt.Sprintf("Session %s", id[:8]),
		CreatedAt:   time.Now().Format(time.RFC3339Nano),
		Provider:    provider,
		Model:       model,
		ChatHistory: []ChatMessage{},
		FilesEdited: []string{},
		Metadata:    SessionMetadata{Version: sessionSchemaVersion},
	}
}

// AppendMessage adds a timestamped turn to the chat history.
func (s *Session) AppendMessage(role, content string) {
	s.ChatHistory = append(s.ChatHistory, ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339Nano),
	})
}

// AddFileEdited records a touched file path, preserving insertion order and
// dropping duplicates. Reports whether the path was newly added.
func (s *Session) AddFileEdited(path string) bool {
	for _, p := range s.FilesEdited {
		if p == path {
			return false
		}
	}
	s.FilesEdited = append(s.FilesEdited, path)
	return true
}

// AddContextUsage adds tokens to the running total and overwrites the
// percentage with the latest observed snapshot.
func (s *Session) AddContextUsage(tokens int, percentage float64) {
	s.ContextUsage.TotalTokens += tokens
	s.ContextUsage.Percentage = percentage
}

func (s *Session) AddCost(usd float64) {
	s.Cost.TotalUSD += usd
}

// createdAtTime parses the session's creation timestamp for ordering.
// Unparsable timestamps sort last.
func (s *Session) createdAtTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, s.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
