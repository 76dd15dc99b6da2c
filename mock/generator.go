package mock

import (
	"context"

	"github.com/fwojciec/pagerag"
)

// Compile-time interface verification.
var (
	_ pagerag.Generator      = (*Generator)(nil)
	_ pagerag.Retriever      = (*Retriever)(nil)
	_ pagerag.RequestHandler = (*RequestHandler)(nil)
)

// Generator is a mock implementation of pagerag.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, segments []string, question string, temperature float64) (string, error)
}

func (g *Generator) Generate(ctx context.Context, segments []string, question string, temperature float64) (string, error) {
	return g.GenerateFn(ctx, segments, question, temperature)
}

// Retriever is a mock implementation of pagerag.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, store pagerag.IndexStore, question string) ([]string, error)
}

func (r *Retriever) Retrieve(ctx context.Context, store pagerag.IndexStore, question string) ([]string, error) {
	return r.RetrieveFn(ctx, store, question)
}

// RequestHandler is a mock implementation of pagerag.RequestHandler.
type RequestHandler struct {
	HandleFn func(ctx context.Context, req pagerag.Request) string
}

func (h *RequestHandler) Handle(ctx context.Context, req pagerag.Request) string {
	return h.HandleFn(ctx, req)
}
