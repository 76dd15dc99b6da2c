package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/pagerag"
)

// DefaultTopK is the number of segments retrieved per question.
const DefaultTopK = 4

var _ pagerag.Retriever = (*Retriever)(nil)

// Retriever embeds a question and returns the most similar segments of an
// index, most relevant first.
type Retriever struct {
	Embedder pagerag.Embedder
	TopK     int
}

// NewRetriever returns a Retriever using embedder. A non-positive topK
// selects DefaultTopK.
func NewRetriever(embedder pagerag.Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{Embedder: embedder, TopK: topK}
}

// Retrieve returns up to TopK segment texts from store.
func (r *Retriever) Retrieve(ctx context.Context, store pagerag.IndexStore, question string) ([]string, error) {
	if strings.TrimSpace(question) == "" {
		return nil, pagerag.Errorf(pagerag.EINVALID, pagerag.MsgQuestionRequired)
	}

	vectors, err := r.Embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	if len(vectors) != 1 {
		return nil, pagerag.Errorf(pagerag.EINTERNAL, "embedder returned %d vectors for 1 question", len(vectors))
	}

	k := r.TopK
	if k <= 0 {
		k = DefaultTopK
	}

	results, err := store.Search(ctx, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	segments := make([]string, 0, len(results))
	for _, res := range results {
		segments = append(segments, res.Chunk.Content)
	}
	return segments, nil
}
