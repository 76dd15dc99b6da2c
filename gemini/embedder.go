package gemini

import (
	"context"

	"github.com/fwojciec/pagerag"
	"google.golang.org/genai"
)

var _ pagerag.Embedder = (*Embedder)(nil)

// Embedder implements pagerag.Embedder using Gemini embedding models.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
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

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, pagerag.Errorf(pagerag.EINTERNAL, "expected %d embeddings from gemini", len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, pagerag.Errorf(pagerag.EINTERNAL, "gemini returned empty embedding at %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}
