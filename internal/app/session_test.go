package app

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSessionJSONRoundTrip(t *testing.T) {
	sess := NewSession("openrouter", "openai/gpt-4")
	sess.AppendMessage("user", "hello")
	sess.AppendMessage("assistant", "hi there")
	sess.AddFileEdited("main.go")
	sess.AddContextUsage(120, 1.5)
	sess.AddCost(0.004)

	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(*sess, restored) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", restored, *sess)
	}
}

func TestSessionStableFieldNames(t *testing.T) {
	data, err := json.Marshal(NewSession("openrouter", "openai/gpt-4"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{
		"session_id", "name", "created_at", "provider", "model",
		"chat_history", "files_edited", "context_usage", "cost", "metadata",
		"total_tokens", "percentage", "total_usd",
	} {
		if !strings.Contains(string(data), `"`+field+`"`) {
			t.Fatalf("serialized session missing field %q: %s", field, data)
		}
	}
}

func TestSessionIDUniqueness(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewSessionID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session id after %d draws: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestSessionDefaultName(t *testing.T) {
	sess := NewSession("openrouter", "openai/gpt-4")
	want := "Session " + sess.SessionID[:8]
	if sess.Name != want {
		t.Fatalf("Name = %q, want %q", sess.Name, want)
	}
}

func TestSessionFilesEditedSetSemantics(t *testing.T) {
	sess := NewSession("openrouter", "openai/gpt-4")
	if !sess.AddFileEdited("a.go") {
		t.Fatalf("first add should report true")
	}
	if !sess.AddFileEdited("b.go") {
		t.Fatalf("second path should report true")
	}
	if sess.AddFileEdited("a.go") {
		t.Fatalf("duplicate add should report false")
	}
	if !reflect.DeepEqual(sess.FilesEdited, []string{"a.go", "b.go"}) {
		t.Fatalf("FilesEdited = %v, want insertion order without duplicates", sess.FilesEdited)
	}
}

func TestSessionCounterSemantics(t *testing.T) {
	sess := NewSession("openrouter", "openai/gpt-4")
	sess.AddContextUsage(100, 10)
	sess.AddContextUsage(50, 25)
	if sess.ContextUsage.TotalTokens != 150 {
		t.Fatalf("TotalTokens = %d, want 150", sess.ContextUsage.TotalTokens)
	}
	if sess.ContextUsage.Percentage != 25 {
		t.Fatalf("Percentage = %v, want last-write-wins 25", sess.ContextUsage.Percentage)
	}

	sess.AddCost(0.5)
	sess.AddCost(0.25)
	if sess.Cost.TotalUSD != 0.75 {
		t.Fatalf("TotalUSD = %v, want 0.75", sess.Cost.TotalUSD)
	}
}
