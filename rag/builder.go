package rag

import (
	"context"
	"fmt"

	"github.com/fwojciec/pagerag"
	"golang.org/x/sync/errgroup"
)

// Builder defaults.
const (
	DefaultBatchSize   = 64
	DefaultConcurrency = 4
)

var _ pagerag.IndexBuilder = (*Builder)(nil)

// Builder builds an index for a page: load, split, embed, index.
type Builder struct {
	Loader   pagerag.PageLoader
	Chunker  pagerag.Chunker
	Embedder pagerag.Embedder
	Indexer  pagerag.Indexer

	// BatchSize is the number of segments per embedding call.
	BatchSize int

	// Concurrency limits embedding calls in flight.
	Concurrency int
}

// Build builds the index for key. Every failure, whatever its cause, is
// returned as EBUILD carrying the cause's message.
func (b *Builder) Build(ctx context.Context, key pagerag.IndexKey) (pagerag.IndexStore, error) {
	store, err := b.build(ctx, key)
	if err != nil {
		return nil, pagerag.Errorf(pagerag.EBUILD, "failed to load web page: %s", pagerag.ErrorMessage(err))
	}
	return store, nil
}

func (b *Builder) build(ctx context.Context, key pagerag.IndexKey) (pagerag.IndexStore, error) {
	u, err := pagerag.NormalizeURL(key.URL)
	if err != nil {
		return nil, err
	}
	key.URL = u

	if key.ChunkSize <= 0 || key.ChunkOverlap < 0 || key.ChunkOverlap >= key.ChunkSize {
		return nil, pagerag.Errorf(pagerag.EINVALID, "invalid chunk parameters size=%d overlap=%d", key.ChunkSize, key.ChunkOverlap)
	}

	page, err := b.Loader.Load(ctx, key.URL)
	if err != nil {
		return nil, err
	}

	segments, err := b.Chunker.Split(page.Content, key.ChunkSize, key.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, pagerag.Errorf(pagerag.EEMPTY, "no text segments extracted from %s", key.URL)
	}

	vectors, err := b.embed(ctx, segments)
	if err != nil {
		return nil, err
	}

	chunks := make([]*pagerag.Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = &pagerag.Chunk{
			ID:        pagerag.ChunkID(key, i),
			Position:  i,
			Content:   seg,
			Embedding: vectors[i],
		}
	}

	return b.Indexer.Index(ctx, key, chunks)
}

// embed embeds segments in batches, preserving input order.
func (b *Builder) embed(ctx context.Context, segments []string) ([][]float32, error) {
	batchSize := b.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	vectors := make([][]float32, len(segments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(segments); start += batchSize {
		end := min(start+batchSize, len(segments))
		g.Go(func() error {
			batch, err := b.Embedder.Embed(gctx, segments[start:end])
			if err != nil {
				return fmt.Errorf("embed segments %d-%d: %w", start, end-1, err)
			}
			if len(batch) != end-start {
				return fmt.Errorf("embedder returned %d vectors for %d segments", len(batch), end-start)
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
