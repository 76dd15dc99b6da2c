package rag_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pagerag"
	"github.com/fwojciec/pagerag/mock"
	"github.com/fwojciec/pagerag/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetriever_Retrieve(t *testing.T) {
	t.Parallel()

	embedder := &mock.Embedder{
		EmbedFn: func(_ context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{0.5, 0.5}}, nil
		},
	}

	t.Run("returns segments in relevance order", func(t *testing.T) {
		t.Parallel()

		var gotK int
		var gotVector []float32
		store := &mock.IndexStore{
			SearchFn: func(_ context.Context, vector []float32, k int) ([]pagerag.SearchResult, error) {
				gotK = k
				gotVector = vector
				return []pagerag.SearchResult{
					{Chunk: &pagerag.Chunk{Content: "best"}, Score: 0.9},
					{Chunk: &pagerag.Chunk{Content: "second"}, Score: 0.5},
				}, nil
			},
		}

		segments, err := rag.NewRetriever(embedder, 0).Retrieve(context.Background(), store, "what?")

		require.NoError(t, err)
		assert.Equal(t, []string{"best", "second"}, segments)
		assert.Equal(t, rag.DefaultTopK, gotK)
		assert.Equal(t, []float32{0.5, 0.5}, gotVector)
	})

	t.Run("passes configured top K", func(t *testing.T) {
		t.Parallel()

		var gotK int
		store := &mock.IndexStore{
			SearchFn: func(_ context.Context, _ []float32, k int) ([]pagerag.SearchResult, error) {
				gotK = k
				return nil, nil
			},
		}

		_, err := rag.NewRetriever(embedder, 7).Retrieve(context.Background(), store, "what?")

		require.NoError(t, err)
		assert.Equal(t, 7, gotK)
	})

	t.Run("blank question is EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := rag.NewRetriever(embedder, 0).Retrieve(context.Background(), &mock.IndexStore{}, "  ")

		assert.Equal(t, pagerag.EINVALID, pagerag.ErrorCode(err))
	})

	t.Run("returns embedding error", func(t *testing.T) {
		t.Parallel()

		failing := &mock.Embedder{
			EmbedFn: func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("rate limited")
			},
		}

		_, err := rag.NewRetriever(failing, 0).Retrieve(context.Background(), &mock.IndexStore{}, "what?")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("returns search error", func(t *testing.T) {
		t.Parallel()

		store := &mock.IndexStore{
			SearchFn: func(context.Context, []float32, int) ([]pagerag.SearchResult, error) {
				return nil, errors.New("dimension mismatch")
			},
		}

		_, err := rag.NewRetriever(embedder, 0).Retrieve(context.Background(), store, "what?")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "dimension mismatch")
	})
}
