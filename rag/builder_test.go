package rag_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/pagerag"
	"github.com/fwojciec/pagerag/mock"
	"github.com/fwojciec/pagerag/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lengthEmbedder embeds each text as a one-dimensional vector of its length.
func lengthEmbedder() *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i, text := range texts {
				vectors[i] = []float32{float32(len(text))}
			}
			return vectors, nil
		},
	}
}

func newTestBuilder(content string, segments []string) (*rag.Builder, *[]*pagerag.Chunk) {
	indexed := new([]*pagerag.Chunk)
	b := &rag.Builder{
		Loader: &mock.PageLoader{
			LoadFn: func(_ context.Context, url string) (*pagerag.Page, error) {
				return &pagerag.Page{URL: url, Content: content}, nil
			},
		},
		Chunker: &mock.Chunker{
			SplitFn: func(string, int, int) ([]string, error) {
				return segments, nil
			},
		},
		Embedder: lengthEmbedder(),
		Indexer: &mock.Indexer{
			IndexFn: func(_ context.Context, _ pagerag.IndexKey, chunks []*pagerag.Chunk) (pagerag.IndexStore, error) {
				*indexed = chunks
				return &mock.IndexStore{LenFn: func() int { return len(chunks) }}, nil
			},
		},
	}
	return b, indexed
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	key := pagerag.IndexKey{URL: "https://example.com", ChunkSize: 1000, ChunkOverlap: 200}

	t.Run("indexes embedded chunks in order", func(t *testing.T) {
		t.Parallel()

		b, indexed := newTestBuilder("a bb ccc", []string{"a", "bb", "ccc"})

		store, err := b.Build(context.Background(), key)

		require.NoError(t, err)
		assert.Equal(t, 3, store.Len())
		require.Len(t, *indexed, 3)
		for i, chunk := range *indexed {
			assert.Equal(t, i, chunk.Position)
			assert.Equal(t, pagerag.ChunkID(key, i), chunk.ID)
			assert.Equal(t, []float32{float32(i + 1)}, chunk.Embedding)
		}
	})

	t.Run("normalizes URL before loading", func(t *testing.T) {
		t.Parallel()

		var loaded string
		b, _ := newTestBuilder("text", []string{"text"})
		b.Loader = &mock.PageLoader{
			LoadFn: func(_ context.Context, url string) (*pagerag.Page, error) {
				loaded = url
				return &pagerag.Page{URL: url, Content: "text"}, nil
			},
		}

		_, err := b.Build(context.Background(), pagerag.IndexKey{URL: " example.com ", ChunkSize: 10, ChunkOverlap: 0})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", loaded)
	})

	t.Run("embeds in batches preserving order", func(t *testing.T) {
		t.Parallel()

		segments := make([]string, 10)
		for i := range segments {
			segments[i] = fmt.Sprintf("%0*d", i+1, 0)
		}

		var mu sync.Mutex
		var calls int
		b, indexed := newTestBuilder("x", segments)
		b.BatchSize = 3
		b.Concurrency = 2
		b.Embedder = &mock.Embedder{
			EmbedFn: func(ctx context.Context, texts []string) ([][]float32, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				assert.LessOrEqual(t, len(texts), 3)
				return lengthEmbedder().Embed(ctx, texts)
			},
		}

		_, err := b.Build(context.Background(), key)

		require.NoError(t, err)
		assert.Equal(t, 4, calls)
		for i, chunk := range *indexed {
			assert.Equal(t, []float32{float32(i + 1)}, chunk.Embedding)
		}
	})

	t.Run("load failure is EBUILD with cause message", func(t *testing.T) {
		t.Parallel()

		b, _ := newTestBuilder("", nil)
		b.Loader = &mock.PageLoader{
			LoadFn: func(context.Context, string) (*pagerag.Page, error) {
				return nil, errors.New("no such host")
			},
		}

		_, err := b.Build(context.Background(), key)

		assert.Equal(t, pagerag.EBUILD, pagerag.ErrorCode(err))
		assert.Contains(t, pagerag.ErrorMessage(err), "no such host")
	})

	t.Run("no segments is EBUILD", func(t *testing.T) {
		t.Parallel()

		b, _ := newTestBuilder("", []string{})

		_, err := b.Build(context.Background(), key)

		assert.Equal(t, pagerag.EBUILD, pagerag.ErrorCode(err))
		assert.Contains(t, pagerag.ErrorMessage(err), "no text segments")
	})

	t.Run("embedding failure is EBUILD", func(t *testing.T) {
		t.Parallel()

		b, _ := newTestBuilder("text", []string{"text"})
		b.Embedder = &mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		_, err := b.Build(context.Background(), key)

		assert.Equal(t, pagerag.EBUILD, pagerag.ErrorCode(err))
		assert.Contains(t, pagerag.ErrorMessage(err), "quota exceeded")
	})

	t.Run("vector count mismatch is EBUILD", func(t *testing.T) {
		t.Parallel()

		b, _ := newTestBuilder("text", []string{"a", "b"})
		b.Embedder = &mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return [][]float32{{1}}, nil
			},
		}

		_, err := b.Build(context.Background(), key)

		assert.Equal(t, pagerag.EBUILD, pagerag.ErrorCode(err))
	})

	t.Run("invalid chunk parameters are EBUILD", func(t *testing.T) {
		t.Parallel()

		b, _ := newTestBuilder("text", []string{"text"})

		_, err := b.Build(context.Background(), pagerag.IndexKey{URL: "https://example.com", ChunkSize: 10, ChunkOverlap: 10})

		assert.Equal(t, pagerag.EBUILD, pagerag.ErrorCode(err))
	})
}
