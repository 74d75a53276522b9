package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blonde/internal/app"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Message is one rendered chat line.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// turnResultMsg carries the adapter's reply (or failure) back to the UI
// loop, along with a snapshot of the session counters taken after the turn
// completed. The update loop renders only this snapshot; it never reads the
// session while a turn goroutine may be writing it.
type turnResultMsg struct {
	reply string
	err   error

	totalTokens int
	percentage  float64
	costUSD     float64
	hasSession  bool
}

// Model is the chat TUI: a message log, a textarea, a status bar, and the
// Blip mascot. All session mutation happens on the update loop, so the
// session manager sees a single writer.
type Model struct {
	application *app.Application

	messages  []Message
	input     textarea.Model
	loading   bool
	character string
	blipFrame int
	provider  string
	model     string

	windowWidth  int
	windowHeight int

	// Status-bar state, owned by the update loop. Refreshed from the
	// snapshot each turnResultMsg carries.
	totalTokens int
	percentage  float64
	costUSD     float64
	hasSession  bool
}

func New(application *app.Application) *Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message... (Enter to send, Esc to quit)"
	ta.Focus()
	ta.CharLimit = 8000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.Prompt = "▍ "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	return &Model{
		application:  application,
		messages:     []Message{},
		input:        ta,
		character:    application.Config.BlipCharacter(),
		provider:     application.Providers.CurrentProvider(),
		model:        application.Providers.CurrentModel(),
		windowWidth:  80,
		windowHeight: 24,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, blipTick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case blipTickMsg:
		m.blipFrame++
		return m, blipTick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.messages = append(m.messages, Message{Role: "user", Content: text, Timestamp: time.Now()})
			m.loading = true
			return m, m.executeTurn(text)
		}

	case turnResultMsg:
		m.loading = false
		if msg.hasSession {
			m.totalTokens = msg.totalTokens
			m.percentage = msg.percentage
			m.costUSD = msg.costUSD
			m.hasSession = true
		}
		if msg.err != nil {
			m.messages = append(m.messages, Message{
				Role:      "error",
				Content:   msg.err.Error(),
				Timestamp: time.Now(),
			})
			return m, nil
		}
		m.messages = append(m.messages, Message{
			Role:      "assistant",
			Content:   msg.reply,
			Timestamp: time.Now(),
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// executeTurn runs the network call off the update loop. At most one turn is
// in flight at a time (guarded by m.loading), so the goroutine is the sole
// reader and writer of the session until its result message lands.
func (m *Model) executeTurn(text string) tea.Cmd {
	application := m.application
	return func() tea.Msg {
		reply, err := application.ExecuteTurn(context.Background(), text)
		result := turnResultMsg{reply: reply, err: err}
		if sess := application.Sessions.Current(); sess != nil {
			result.totalTokens = sess.ContextUsage.TotalTokens
			result.percentage = sess.ContextUsage.Percentage
			result.costUSD = sess.Cost.TotalUSD
			result.hasSession = true
		}
		return result
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(blipStyle.Render(blipFrame(m.character, m.blipFrame)))
	b.WriteString("\n\n")

	if len(m.messages) == 0 {
		b.WriteString(hintStyle.Render("Start a conversation. The current provider and model are shown below."))
		b.WriteString("\n")
	}
	for _, msg := range m.messages {
		switch msg.Role {
		case "user":
			b.WriteString(userLabelStyle.Render("You"))
		case "assistant":
			b.WriteString(assistantLabelStyle.Render("Assistant"))
		default:
			b.WriteString(errorStyle.Render("Error"))
		}
		b.WriteString("  ")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(hintStyle.Render("thinking" + strings.Repeat(".", m.blipFrame%4)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m *Model) statusBar() string {
	status := fmt.Sprintf("%s · %s", m.provider, m.model)
	if m.hasSession {
		status += fmt.Sprintf(" · %d tok (%.1f%%) · $%.4f",
			m.totalTokens, m.percentage, m.costUSD)
	}
	return statusBarStyle.Width(m.windowWidth).Render(status)
}
