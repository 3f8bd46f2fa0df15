// Package tui implements the interactive chat interface built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lifebase/lifebase/internal/assistant"
	"github.com/lifebase/lifebase/internal/llm"
)

// chatTurn is one rendered exchange in the transcript.
type chatTurn struct {
	role    string
	content string
	modules []string
}

// replyMsg carries the orchestrator's response back into the event loop.
type replyMsg struct {
	response assistant.Response
	message  string
}

// Config holds the chat TUI configuration.
type Config struct {
	Orchestrator *assistant.Orchestrator
	UserID       string
	Width        int
	Height       int
}

// Model holds the chat TUI state.
type Model struct {
	orchestrator *assistant.Orchestrator
	userID       string
	history      []llm.Message
	turns        []chatTurn
	viewport     viewport.Model
	input        textinput.Model
	spinner      spinner.Model
	keymap       KeyMap
	width        int
	height       int
	waiting      bool
	ready        bool
	quitting     bool
}

// NewModel creates a chat model with the given configuration.
func NewModel(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "记一笔，或者随便聊聊..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	return Model{
		orchestrator: cfg.Orchestrator,
		userID:       cfg.UserID,
		input:        ti,
		spinner:      sp,
		keymap:       DefaultKeyMap(),
		width:        cfg.Width,
		height:       cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Clear):
			m.turns = nil
			m.history = nil
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, m.keymap.Send):
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.turns = append(m.turns, chatTurn{role: "user", content: text})
			m.input.Reset()
			m.waiting = true
			m.refreshViewport()
			return m, tea.Batch(m.sendMessage(text), m.spinner.Tick)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		m.ready = true

	case replyMsg:
		m.waiting = false
		m.history = append(m.history,
			llm.Message{Role: "user", Content: msg.message},
			llm.Message{Role: "assistant", Content: msg.response.Text},
		)
		m.turns = append(m.turns, chatTurn{
			role:    "assistant",
			content: msg.response.Text,
			modules: msg.response.DetectedModules,
		})
		m.refreshViewport()

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// sendMessage runs one conversational turn off the event loop.
func (m Model) sendMessage(text string) tea.Cmd {
	orchestrator := m.orchestrator
	userID := m.userID
	history := make([]llm.Message, len(m.history))
	copy(history, m.history)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		resp := orchestrator.HandleMessage(ctx, text, history, userID)
		return replyMsg{response: resp, message: text}
	}
}

func (m *Model) handleResize() {
	inputHeight := 3
	headerHeight := 2
	vpHeight := m.height - inputHeight - headerHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.input.Width = m.width - 6
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	var b strings.Builder
	for _, turn := range m.turns {
		switch turn.role {
		case "user":
			b.WriteString(userStyle.Render("你") + " " + turn.content + "\n")
		default:
			b.WriteString(assistantStyle.Render("助手") + " " + turn.content + "\n")
			if len(turn.modules) > 0 {
				b.WriteString(moduleStyle.Render("已记录到："+strings.Join(turn.modules, "、")) + "\n")
			}
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View renders the chat interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	header := titleStyle.Render("LifeBase") + helpStyle.Render("  enter 发送 · ctrl+l 清屏 · ctrl+c 退出")

	status := ""
	if m.waiting {
		status = m.spinner.View() + " 思考中..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		header,
		m.viewport.View(),
		status,
		inputBoxStyle.Width(m.width-2).Render(m.input.View()),
	)
}
