package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pagerag"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Handler pagerag.RequestHandler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Serve the browser chat UI"`
	Chat  ChatCmd  `cmd:"" help:"Chat about a web page in the terminal"`
	Ask   AskCmd   `cmd:"" help:"Ask a single question about a web page"`
}

// PageFlags select the page and how it is split and answered. Values are
// kept as text so that validation messages match the other front ends.
type PageFlags struct {
	URL          string `short:"u" required:"" help:"Web page URL (https:// is added when missing)"`
	ChunkSize    string `default:"1000" help:"Characters per text segment"`
	ChunkOverlap string `default:"200" help:"Characters shared by consecutive segments"`
	Temperature  string `short:"t" default:"0" help:"Sampling temperature between 0 and 2"`
}

// Request returns a request for question built from the flags.
func (f PageFlags) Request(question string) pagerag.Request {
	return pagerag.Request{
		Question:     question,
		URL:          f.URL,
		ChunkSize:    f.ChunkSize,
		ChunkOverlap: f.ChunkOverlap,
		Temperature:  f.Temperature,
	}
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":7860" help:"Address to listen on"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	PageFlags `embed:""`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question  string `arg:"" help:"Question to ask about the web page"`
	PageFlags `embed:""`
}
