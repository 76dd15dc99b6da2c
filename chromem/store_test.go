package chromem_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagerag"
	"github.com/fwojciec/pagerag/chromem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunks(key pagerag.IndexKey) []*pagerag.Chunk {
	return []*pagerag.Chunk{
		{ID: pagerag.ChunkID(key, 0), Position: 0, Content: "north", Embedding: []float32{1, 0, 0}},
		{ID: pagerag.ChunkID(key, 1), Position: 1, Content: "east", Embedding: []float32{0, 1, 0}},
		{ID: pagerag.ChunkID(key, 2), Position: 2, Content: "north-east", Embedding: []float32{0.7, 0.7, 0}},
	}
}

func TestStore_Search(t *testing.T) {
	t.Parallel()

	key := pagerag.IndexKey{URL: "https://example.com", ChunkSize: 100, ChunkOverlap: 0}

	t.Run("orders results by similarity", func(t *testing.T) {
		t.Parallel()

		store, err := chromem.NewIndexer().Index(context.Background(), key, testChunks(key))
		require.NoError(t, err)

		results, err := store.Search(context.Background(), []float32{1, 0.1, 0}, 2)

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "north", results[0].Chunk.Content)
		assert.Equal(t, 0, results[0].Chunk.Position)
		assert.Equal(t, "north-east", results[1].Chunk.Content)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("clamps k to index size", func(t *testing.T) {
		t.Parallel()

		store, err := chromem.NewIndexer().Index(context.Background(), key, testChunks(key))
		require.NoError(t, err)

		results, err := store.Search(context.Background(), []float32{0, 1, 0}, 10)

		require.NoError(t, err)
		assert.Len(t, results, 3)
		assert.Equal(t, 3, store.Len())
	})

	t.Run("keys get separate collections", func(t *testing.T) {
		t.Parallel()

		indexer := chromem.NewIndexer()
		other := key
		other.ChunkSize = 50

		first, err := indexer.Index(context.Background(), key, testChunks(key))
		require.NoError(t, err)
		second, err := indexer.Index(context.Background(), other, testChunks(other)[:1])
		require.NoError(t, err)

		assert.Equal(t, 3, first.Len())
		assert.Equal(t, 1, second.Len())
	})
}

func TestIndexer_Index(t *testing.T) {
	t.Parallel()

	key := pagerag.IndexKey{URL: "https://example.com", ChunkSize: 100, ChunkOverlap: 0}

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := chromem.NewIndexer().Index(context.Background(), key, nil)

		assert.Equal(t, pagerag.EEMPTY, pagerag.ErrorCode(err))
	})

	t.Run("rejects chunk without embedding", func(t *testing.T) {
		t.Parallel()

		chunks := []*pagerag.Chunk{{ID: "a", Content: "text"}}

		_, err := chromem.NewIndexer().Index(context.Background(), key, chunks)

		assert.Equal(t, pagerag.EINVALID, pagerag.ErrorCode(err))
	})
}
