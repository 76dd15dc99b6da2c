// Package slog provides logging decorators for the pagerag interfaces.
// Each decorator logs one line per call with its key attributes, the
// duration and the error, then returns the wrapped result unchanged.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagerag"
)

var (
	_ pagerag.Fetcher      = (*LoggingFetcher)(nil)
	_ pagerag.Embedder     = (*LoggingEmbedder)(nil)
	_ pagerag.Generator    = (*LoggingGenerator)(nil)
	_ pagerag.IndexBuilder = (*LoggingIndexBuilder)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   pagerag.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagerag.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL and payload size and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.InfoContext(ctx, "fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   pagerag.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next pagerag.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed logs the number of texts and delegates to the wrapped embedder.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		e.logger.DebugContext(ctx, "embed",
			"count", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   pagerag.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next pagerag.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate logs the segment count and temperature and delegates to the
// wrapped generator.
func (g *LoggingGenerator) Generate(ctx context.Context, segments []string, question string, temperature float64) (answer string, err error) {
	defer func(begin time.Time) {
		g.logger.InfoContext(ctx, "generate",
			"segments", len(segments),
			"temperature", temperature,
			"answer_bytes", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, segments, question, temperature)
}

// LoggingIndexBuilder wraps an IndexBuilder with logging.
type LoggingIndexBuilder struct {
	next   pagerag.IndexBuilder
	logger *slog.Logger
}

// NewLoggingIndexBuilder creates a new LoggingIndexBuilder.
func NewLoggingIndexBuilder(next pagerag.IndexBuilder, logger *slog.Logger) *LoggingIndexBuilder {
	return &LoggingIndexBuilder{next: next, logger: logger}
}

// Build logs the key and resulting chunk count and delegates to the
// wrapped builder.
func (b *LoggingIndexBuilder) Build(ctx context.Context, key pagerag.IndexKey) (store pagerag.IndexStore, err error) {
	defer func(begin time.Time) {
		chunks := 0
		if store != nil {
			chunks = store.Len()
		}
		b.logger.InfoContext(ctx, "build index",
			"url", key.URL,
			"key", key.Fingerprint(),
			"chunks", chunks,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Build(ctx, key)
}
