package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecuteAgentUnknownRole(t *testing.T) {
	team := NewAgentTeam(NewMockAdapter(), nil)
	got := team.ExecuteAgent(context.Background(), "nonexistent", "task", "")
	if got != "Unknown agent: nonexistent" {
		t.Fatalf("ExecuteAgent(nonexistent) = %q, want unknown-agent string", got)
	}
}

func TestExecuteAgentRendersTaskAndContext(t *testing.T) {
	var captured string
	adapter := &MockAdapter{Respond: func(prompt string) string {
		captured = prompt
		return "ok"
	}}
	team := NewAgentTeam(adapter, nil)

	out := team.ExecuteAgent(context.Background(), AgentGenerator, "build a parser", "Go module")
	if out != "ok" {
		t.Fatalf("ExecuteAgent = %q, want raw adapter output", out)
	}
	if !strings.Contains(captured, "build a parser") {
		t.Fatalf("rendered prompt missing task: %q", captured)
	}
	if !strings.Contains(captured, "Go module") {
		t.Fatalf("rendered prompt missing context: %q", captured)
	}
	if strings.Contains(captured, "{{task}}") || strings.Contains(captured, "{{context}}") {
		t.Fatalf("placeholders left unrendered: %q", captured)
	}
}

func TestAgentChatFailuresAbsorbedIntoErrorString(t *testing.T) {
	team := NewAgentTeam(&MockAdapter{Err: errors.New("connection refused")}, nil)
	got := team.ExecuteAgent(context.Background(), AgentReviewer, "code", "")
	if !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("adapter failure should become an error string, got %q", got)
	}
	if !strings.Contains(got, "connection refused") {
		t.Fatalf("error string should carry the cause, got %q", got)
	}
}

func TestCollaborateDefaultRoles(t *testing.T) {
	team := NewAgentTeam(NewMockAdapter(), nil)
	results := team.Collaborate(context.Background(), "task", nil, "")
	if len(results) != 3 {
		t.Fatalf("expected 3 default results, got %d", len(results))
	}
	for _, role := range []string{AgentGenerator, AgentReviewer, AgentTester} {
		if _, ok := results[role]; !ok {
			t.Fatalf("default collaboration missing role %q", role)
		}
	}
}

func TestCollaborateSkipsUnknownRoles(t *testing.T) {
	team := NewAgentTeam(NewMockAdapter(), nil)
	results := team.Collaborate(context.Background(), "task", []string{AgentDocumenter, "bogus"}, "")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if _, ok := results[AgentDocumenter]; !ok {
		t.Fatalf("documenter result missing")
	}
}

func TestAgentListSorted(t *testing.T) {
	team := NewAgentTeam(NewMockAdapter(), nil)
	got := team.AgentList()
	want := []string{"documenter", "generator", "refactorer", "reviewer", "tester"}
	if len(got) != len(want) {
		t.Fatalf("AgentList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AgentList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadTemplateOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	if err := os.WriteFile(path, []byte("generator: \"DO {{task}} WITH {{context}}\"\nbogus: ignored\n"), 0o644); err != nil {
		t.Fatalf("write overrides: %v", err)
	}

	var captured string
	adapter := &MockAdapter{Respond: func(prompt string) string {
		captured = prompt
		return "ok"
	}}
	team := NewAgentTeam(adapter, nil)
	if err := team.LoadTemplateOverrides(path); err != nil {
		t.Fatalf("load overrides: %v", err)
	}

	team.ExecuteAgent(context.Background(), AgentGenerator, "X", "Y")
	if captured != "DO X WITH Y" {
		t.Fatalf("override not applied, prompt = %q", captured)
	}
}

func TestLoadTemplateOverridesMissingFileIsFine(t *testing.T) {
	team := NewAgentTeam(NewMockAdapter(), nil)
	if err := team.LoadTemplateOverrides(filepath.Join(t.TempDir(), "agents.yaml")); err != nil {
		t.Fatalf("missing override file should not error: %v", err)
	}
}
