package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/pagerag"
	main "github.com/fwojciec/pagerag/cmd/pagerag"
	"github.com/fwojciec/pagerag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	help := stdout.String()
	assert.Contains(t, help, "Usage:")
	for _, cmd := range []string{"serve", "chat", "ask"} {
		assert.Contains(t, help, cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Ask(t *testing.T) {
	t.Parallel()

	var got pagerag.Request
	m := main.NewMain()
	m.Environment = map[string]string{}
	m.Handler = &mock.RequestHandler{
		HandleFn: func(_ context.Context, req pagerag.Request) string {
			got = req
			return "Python is a programming language."
		},
	}

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"ask", "What is Python?", "--url", "python.org", "--temperature", "0.3"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "Python is a programming language.\n", stdout.String())
	assert.Equal(t, "python.org", got.URL)
	assert.Equal(t, "0.3", got.Temperature)
	assert.Equal(t, "1000", got.ChunkSize)
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Environment = map[string]string{"PAGERAG_STORE": "redis"}
	m.Handler = &mock.RequestHandler{}

	err := m.Run(context.Background(), []string{"ask", "q", "--url", "python.org"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGERAG_STORE")
}

func TestMain_Run_WiresPipelineWithoutAPIKey(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Environment = map[string]string{"PAGERAG_STORE": "sqlite"}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"ask", "   ", "--url", "python.org"}, stdout, stderr)
	require.NoError(t, err)

	assert.Equal(t, pagerag.MsgQuestionRequired+"\n", stdout.String())
	assert.Contains(t, stderr.String(), "OPENAI_API_KEY")
}

func TestServeCmd_Run_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  &bytes.Buffer{},
		Handler: &mock.RequestHandler{},
	}

	done := make(chan error, 1)
	go func() {
		done <- (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)
	}()
	cancel()

	require.NoError(t, <-done)
}
