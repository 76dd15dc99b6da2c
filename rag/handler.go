package rag

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/pagerag"
	"github.com/google/uuid"
)

var _ pagerag.RequestHandler = (*Handler)(nil)

// Handler answers questions about web pages. It validates the request,
// obtains the page index from the cache (building it on a miss), retrieves
// the relevant segments and asks the generator for an answer.
type Handler struct {
	Cache     *IndexCache
	Builder   pagerag.IndexBuilder
	Retriever pagerag.Retriever
	Generator pagerag.Generator
	Logger    *slog.Logger
}

// NewHandler returns a Handler. A nil logger discards log output.
func NewHandler(cache *IndexCache, builder pagerag.IndexBuilder, retriever pagerag.Retriever, generator pagerag.Generator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		Cache:     cache,
		Builder:   builder,
		Retriever: retriever,
		Generator: generator,
		Logger:    logger,
	}
}

// Handle answers req and always returns displayable text: either the
// answer or a message describing what went wrong.
func (h *Handler) Handle(ctx context.Context, req pagerag.Request) (reply string) {
	if strings.TrimSpace(req.URL) == "" {
		return pagerag.MsgURLRequired
	}

	params, err := pagerag.ParseParams(req.URL, req.ChunkSize, req.ChunkOverlap, req.Temperature)
	if err != nil {
		return "Input error: " + pagerag.ErrorMessage(err)
	}
	if err := params.Validate(); err != nil {
		return pagerag.ErrorMessage(err)
	}
	if strings.TrimSpace(req.Question) == "" {
		return pagerag.MsgQuestionRequired
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger().Error("request panicked", "url", params.URL, "panic", r)
			reply = "An error occurred while processing the request: internal error"
		}
	}()

	answer, err := h.Ask(ctx, req.Question, params)
	if err != nil {
		return errorReply(err)
	}
	return answer
}

// Ask is the typed core of Handle. Errors carry pagerag error codes.
func (h *Handler) Ask(ctx context.Context, question string, params pagerag.Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(question) == "" {
		return "", pagerag.Errorf(pagerag.EINVALID, pagerag.MsgQuestionRequired)
	}

	key, err := params.Key()
	if err != nil {
		return "", err
	}

	logger := h.logger().With("request_id", uuid.NewString(), "url", key.URL)
	start := time.Now()

	store, err := h.Cache.GetOrBuild(ctx, key, func(ctx context.Context) (pagerag.IndexStore, error) {
		logger.Info("building index", "key", key.Fingerprint(), "chunk_size", key.ChunkSize, "chunk_overlap", key.ChunkOverlap)
		return h.Builder.Build(ctx, key)
	})
	if err != nil {
		logger.Error("index unavailable", "error", err)
		return "", err
	}

	segments, err := h.Retriever.Retrieve(ctx, store, question)
	if err != nil {
		logger.Error("retrieval failed", "error", err)
		return "", err
	}

	answer, err := h.Generator.Generate(ctx, segments, question, params.Temperature)
	if err != nil {
		logger.Error("generation failed", "error", err)
		return "", err
	}

	logger.Info("answered", "segments", len(segments), "duration", time.Since(start))
	return answer, nil
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger
}

// errorReply converts an error into the text shown to the user.
func errorReply(err error) string {
	msg := pagerag.ErrorMessage(err)
	switch pagerag.ErrorCode(err) {
	case pagerag.EINVALID:
		return "Input error: " + msg
	case pagerag.EGENERATE:
		return "An error occurred while generating the answer: " + msg
	default:
		return "An error occurred while processing the request: " + msg
	}
}
