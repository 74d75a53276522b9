package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"blonde/internal/app"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	application, err := app.NewApplication(t.TempDir(), false)
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	if err := application.Config.SetProvider("mock"); err != nil {
		t.Fatalf("set provider: %v", err)
	}
	return New(application)
}

func runTurn(t *testing.T, m *Model, text string) {
	t.Helper()
	msg := m.executeTurn(text)()
	result, ok := msg.(turnResultMsg)
	if !ok {
		t.Fatalf("executeTurn returned %T, want turnResultMsg", msg)
	}
	if result.err != nil {
		t.Fatalf("turn failed: %v", result.err)
	}
	m.Update(result)
}

func TestTurnResultCarriesUsageSnapshot(t *testing.T) {
	m := newTestModel(t)

	msg := m.executeTurn("hello")()
	result, ok := msg.(turnResultMsg)
	if !ok {
		t.Fatalf("executeTurn returned %T, want turnResultMsg", msg)
	}
	if result.err != nil {
		t.Fatalf("turn failed: %v", result.err)
	}
	if !result.hasSession {
		t.Fatalf("turn should have created a session for the snapshot")
	}
	if result.totalTokens <= 0 {
		t.Fatalf("snapshot tokens = %d, want > 0", result.totalTokens)
	}
}

func TestStatusBarRendersSnapshotState(t *testing.T) {
	m := newTestModel(t)

	before := m.statusBar()
	if strings.Contains(before, "tok") {
		t.Fatalf("status bar should show no usage before the first turn: %q", before)
	}

	runTurn(t, m, "hello")

	after := m.statusBar()
	if !strings.Contains(after, "tok") || !strings.Contains(after, "$") {
		t.Fatalf("status bar missing usage/cost after turn: %q", after)
	}
	if !strings.Contains(after, m.provider) {
		t.Fatalf("status bar missing provider %q: %q", m.provider, after)
	}
}

// The update loop renders while a turn goroutine mutates the session. View
// must only touch state the loop owns, so rendering mid-turn is safe.
func TestViewConcurrentWithTurns(t *testing.T) {
	m := newTestModel(t)

	done := make(chan struct{})
	results := make(chan tea.Msg, 50)
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			results <- m.executeTurn("hello")()
		}
	}()

	for {
		select {
		case <-done:
			for len(results) > 0 {
				m.Update(<-results)
			}
			if m.totalTokens <= 0 {
				t.Fatalf("usage snapshot never applied, tokens = %d", m.totalTokens)
			}
			return
		case msg := <-results:
			m.Update(msg)
		default:
			_ = m.View()
		}
	}
}
