package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/pagerag"
	"github.com/fwojciec/pagerag/chromem"
	"github.com/fwojciec/pagerag/etree"
	"github.com/fwojciec/pagerag/gemini"
	"github.com/fwojciec/pagerag/goquery"
	"github.com/fwojciec/pagerag/htmltomarkdown"
	pagehttp "github.com/fwojciec/pagerag/http"
	"github.com/fwojciec/pagerag/openai"
	"github.com/fwojciec/pagerag/pdf"
	"github.com/fwojciec/pagerag/rag"
	"github.com/fwojciec/pagerag/readability"
	"github.com/fwojciec/pagerag/rod"
	pageslog "github.com/fwojciec/pagerag/slog"
	"github.com/fwojciec/pagerag/sqlite"
	"github.com/fwojciec/pagerag/textsplit"
	"github.com/fwojciec/pagerag/trafilatura"
	"google.golang.org/genai"
)

// wire assembles the request handler described by cfg. The returned
// closers must be closed in order when the program exits.
func wire(ctx context.Context, cfg Config, logger *slog.Logger, stderr io.Writer) (*rag.Handler, []io.Closer, error) {
	var closers []io.Closer

	if cfg.APIKey() == "" {
		logger.Warn("API key not set; questions will fail until it is configured",
			"provider", cfg.Provider,
			"env", cfg.APIKeyName(),
		)
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed when PAGERAG_BROWSER is set")
		return nil, nil, err
	}
	closers = append(closers, fetcher)

	embedder, generator, err := newModels(ctx, cfg)
	if err != nil {
		closeAll(closers)
		return nil, nil, err
	}

	indexer, closer, err := newIndexer(cfg)
	if err != nil {
		closeAll(closers)
		return nil, nil, err
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	loggedEmbedder := pageslog.NewLoggingEmbedder(embedder, logger)
	builder := &rag.Builder{
		Loader: &rag.Loader{
			Fetcher:   pageslog.NewLoggingFetcher(fetcher, logger),
			Extractor: newExtractor(cfg),
			Converter: htmltomarkdown.NewConverter(),
			Decoders:  []pagerag.Decoder{pdf.NewDecoder(), etree.NewDecoder()},
			Limiter:   rag.NewDomainLimiter(cfg.FetchRPS),
		},
		Chunker:     textsplit.NewSplitter(),
		Embedder:    loggedEmbedder,
		Indexer:     indexer,
		BatchSize:   rag.DefaultBatchSize,
		Concurrency: rag.DefaultConcurrency,
	}

	handler := rag.NewHandler(
		rag.NewIndexCache(),
		pageslog.NewLoggingIndexBuilder(builder, logger),
		rag.NewRetriever(loggedEmbedder, cfg.TopK),
		pageslog.NewLoggingGenerator(generator, logger),
		logger,
	)
	return handler, closers, nil
}

func newFetcher(cfg Config) (pagerag.Fetcher, error) {
	if cfg.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.FetchTimeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return pagehttp.NewFetcher(pagehttp.WithTimeout(cfg.FetchTimeout)), nil
}

func newExtractor(cfg Config) pagerag.Extractor {
	switch cfg.Extractor {
	case ExtractorReadability:
		return readability.NewExtractor()
	case ExtractorGoquery:
		return goquery.NewExtractor()
	default:
		return trafilatura.NewExtractor()
	}
}

func newModels(ctx context.Context, cfg Config) (pagerag.Embedder, pagerag.Generator, error) {
	switch cfg.Provider {
	case ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.NewEmbedder(client, orDefault(cfg.EmbeddingModel, gemini.DefaultEmbeddingModel)),
			gemini.NewGenerator(client, orDefault(cfg.ChatModel, gemini.DefaultChatModel)),
			nil
	default:
		client := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		return openai.NewEmbedder(client, orDefault(cfg.EmbeddingModel, openai.DefaultEmbeddingModel)),
			openai.NewGenerator(client, orDefault(cfg.ChatModel, openai.DefaultChatModel)),
			nil
	}
}

func newIndexer(cfg Config) (pagerag.Indexer, io.Closer, error) {
	if cfg.Store == StoreSQLite {
		db := sqlite.NewDB(":memory:")
		if err := db.Open(); err != nil {
			return nil, nil, fmt.Errorf("failed to open index database: %w", err)
		}
		return sqlite.NewIndexer(db), db, nil
	}
	return chromem.NewIndexer(), nil, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func closeAll(closers []io.Closer) error {
	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
