// Package tui implements an interactive terminal chat about a single web
// page on top of bubbletea.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/pagerag"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	urlStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle     = lipgloss.NewStyle().Bold(true)
	botStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// answerMsg carries the reply to one question.
type answerMsg struct {
	question string
	answer   string
}

type turn struct {
	question string
	answer   string
}

// Model is the bubbletea model of a chat session. Every question is sent
// with the same URL and chunk parameters.
type Model struct {
	ctx     context.Context
	handler pagerag.RequestHandler
	req     pagerag.Request

	input    textinput.Model
	viewport viewport.Model
	history  []turn
	pending  string
	width    int
}

// New returns a Model asking handler about the page described by req.
// The Question field of req is ignored.
func New(ctx context.Context, handler pagerag.RequestHandler, req pagerag.Request) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the web page..."
	ti.CharLimit = 0
	ti.Focus()

	req.Question = ""
	return Model{
		ctx:      ctx,
		handler:  handler,
		req:      req,
		input:    ti,
		viewport: newViewport(80, 20),
		width:    80,
	}
}

// newViewport returns a transcript viewport that scrolls with the page
// and arrow keys and the mouse wheel. Letter bindings are dropped so that
// typing a question does not scroll.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	vp.KeyMap.HalfPageDown.SetEnabled(false)
	vp.KeyMap.HalfPageUp.SetEnabled(false)
	vp.KeyMap.Down = key.NewBinding(key.WithKeys("down"))
	vp.KeyMap.Up = key.NewBinding(key.WithKeys("up"))
	return vp
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key presses, window resizes and answers. Other messages
// go to both the transcript viewport and the input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		_, frame := inputBoxStyle.GetFrameSize()
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-frame-3)
		m.refresh()
		return m, nil

	case answerMsg:
		m.history = append(m.history, turn{question: msg.question, answer: msg.answer})
		m.pending = ""
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.pending != "" {
				return m, nil
			}
			m.input.Reset()
			m.pending = q
			m.refresh()
			return m, m.ask(q)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ask returns a command that answers q in the background.
func (m Model) ask(q string) tea.Cmd {
	req := m.req
	req.Question = q
	return func() tea.Msg {
		return answerMsg{question: q, answer: m.handler.Handle(m.ctx, req)}
	}
}

// View renders the transcript, the input box and a status line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Web Page Q&A"))
	b.WriteString(" ")
	b.WriteString(urlStyle.Render(m.req.URL))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	status := "enter to ask, esc to quit"
	if m.pending != "" {
		status = "thinking..."
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

// Transcript returns the questions and answers so far as plain text.
func (m Model) Transcript() string {
	var b strings.Builder
	for _, t := range m.history {
		b.WriteString("You: " + t.question + "\n")
		b.WriteString("Bot: " + t.answer + "\n")
	}
	return b.String()
}

func (m *Model) refresh() {
	wrap := lipgloss.NewStyle().Width(max(20, m.width-6))

	var b strings.Builder
	for _, t := range m.history {
		b.WriteString(userStyle.Render("You: ") + wrap.Render(t.question) + "\n")
		b.WriteString(botStyle.Render("Bot: ") + wrap.Render(t.answer) + "\n\n")
	}
	if m.pending != "" {
		b.WriteString(userStyle.Render("You: ") + wrap.Render(m.pending) + "\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Run starts an interactive session on the terminal and blocks until the
// user quits.
func Run(ctx context.Context, handler pagerag.RequestHandler, req pagerag.Request) error {
	p := tea.NewProgram(New(ctx, handler, req), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
