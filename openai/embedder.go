package openai

import (
	"context"

	"github.com/fwojciec/pagerag"
	"github.com/openai/openai-go"
)

// Ensure Embedder implements pagerag.Embedder at compile time.
var _ pagerag.Embedder = (*Embedder)(nil)

// Embedder implements pagerag.Embedder using the embeddings endpoint.
type Embedder struct {
	client openai.Client
	model  string
}

// NewEmbedder creates an Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client openai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, pagerag.Errorf(pagerag.EINTERNAL, "expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(texts) {
			return nil, pagerag.Errorf(pagerag.EINTERNAL, "embedding index %d out of range", d.Index)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
