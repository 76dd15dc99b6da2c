package tui_test

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/pagerag"
	"github.com/fwojciec/pagerag/mock"
	"github.com/fwojciec/pagerag/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_AskSendsRequest(t *testing.T) {
	t.Parallel()

	var got pagerag.Request
	handler := &mock.RequestHandler{
		HandleFn: func(_ context.Context, req pagerag.Request) string {
			got = req
			return "Python is a programming language."
		},
	}
	base := pagerag.Request{Question: "ignored", URL: "python.org", ChunkSize: "1000", ChunkOverlap: "200", Temperature: "0"}

	var m tea.Model = tui.New(context.Background(), handler, base)
	m = typeText(t, m, "What is Python?")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "thinking...")

	m, _ = m.Update(cmd())

	assert.Equal(t, pagerag.Request{
		Question:     "What is Python?",
		URL:          "python.org",
		ChunkSize:    "1000",
		ChunkOverlap: "200",
		Temperature:  "0",
	}, got)
	assert.Equal(t, "You: What is Python?\nBot: Python is a programming language.\n", m.(tui.Model).Transcript())
	assert.NotContains(t, m.View(), "thinking...")
}

func TestModel_BlankQuestionIgnored(t *testing.T) {
	t.Parallel()

	handler := &mock.RequestHandler{
		HandleFn: func(context.Context, pagerag.Request) string {
			t.Fatal("handler must not be called")
			return ""
		},
	}

	var m tea.Model = tui.New(context.Background(), handler, pagerag.Request{URL: "python.org"})
	m = typeText(t, m, "   ")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.(tui.Model).Transcript())
}

func TestModel_SecondQuestionWaitsForAnswer(t *testing.T) {
	t.Parallel()

	handler := &mock.RequestHandler{
		HandleFn: func(context.Context, pagerag.Request) string { return "answer" },
	}

	var m tea.Model = tui.New(context.Background(), handler, pagerag.Request{URL: "python.org"})
	m = typeText(t, m, "first")
	m, first := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)

	m = typeText(t, m, "second")
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, second)
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()

	m := tui.New(context.Background(), &mock.RequestHandler{}, pagerag.Request{URL: "python.org"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_ViewShowsURL(t *testing.T) {
	t.Parallel()

	var m tea.Model = tui.New(context.Background(), &mock.RequestHandler{}, pagerag.Request{URL: "https://www.python.org"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Contains(t, m.View(), "https://www.python.org")
	assert.Contains(t, m.View(), "esc to quit")
}

func TestModel_TranscriptScrolls(t *testing.T) {
	t.Parallel()

	var n int
	handler := &mock.RequestHandler{
		HandleFn: func(context.Context, pagerag.Request) string {
			n++
			return fmt.Sprintf("answer-%02d", n)
		},
	}

	var m tea.Model = tui.New(context.Background(), handler, pagerag.Request{URL: "python.org"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	for range 10 {
		m = typeText(t, m, "q")
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		m, _ = m.Update(cmd())
	}
	require.Contains(t, m.View(), "answer-10")

	m = typeText(t, m, "jk f")
	assert.Contains(t, m.View(), "answer-10", "typing must not scroll the transcript")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.NotContains(t, m.View(), "answer-10")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Contains(t, m.View(), "answer-10")
}
