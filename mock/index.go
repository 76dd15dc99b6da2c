package mock

import (
	"context"

	"github.com/fwojciec/pagerag"
)

// Compile-time interface verification.
var (
	_ pagerag.IndexStore   = (*IndexStore)(nil)
	_ pagerag.Indexer      = (*Indexer)(nil)
	_ pagerag.IndexBuilder = (*IndexBuilder)(nil)
)

// IndexStore is a mock implementation of pagerag.IndexStore.
type IndexStore struct {
	SearchFn func(ctx context.Context, vector []float32, k int) ([]pagerag.SearchResult, error)
	LenFn    func() int
}

func (s *IndexStore) Search(ctx context.Context, vector []float32, k int) ([]pagerag.SearchResult, error) {
	return s.SearchFn(ctx, vector, k)
}

func (s *IndexStore) Len() int {
	if s.LenFn == nil {
		return 0
	}
	return s.LenFn()
}

// Indexer is a mock implementation of pagerag.Indexer.
type Indexer struct {
	IndexFn func(ctx context.Context, key pagerag.IndexKey, chunks []*pagerag.Chunk) (pagerag.IndexStore, error)
}

func (i *Indexer) Index(ctx context.Context, key pagerag.IndexKey, chunks []*pagerag.Chunk) (pagerag.IndexStore, error) {
	return i.IndexFn(ctx, key, chunks)
}

// IndexBuilder is a mock implementation of pagerag.IndexBuilder.
type IndexBuilder struct {
	BuildFn func(ctx context.Context, key pagerag.IndexKey) (pagerag.IndexStore, error)
}

func (b *IndexBuilder) Build(ctx context.Context, key pagerag.IndexKey) (pagerag.IndexStore, error) {
	return b.BuildFn(ctx, key)
}
