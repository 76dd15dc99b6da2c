package pagerag

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// IndexKey identifies a built index: the same page split with the same
// parameters always yields the same key.
type IndexKey struct {
	URL          string
	ChunkSize    int
	ChunkOverlap int
}

// String renders the key as "url_size_overlap".
func (k IndexKey) String() string {
	return k.URL + "_" + strconv.Itoa(k.ChunkSize) + "_" + strconv.Itoa(k.ChunkOverlap)
}

// Fingerprint returns a short, stable hex digest of the key.
func (k IndexKey) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(k.String()))
}

// IndexStore is a read-only nearest-neighbour index over embedded chunks.
// Implementations must be safe for concurrent use.
type IndexStore interface {
	// Search returns up to k chunks ordered by decreasing similarity to
	// the query vector. A k larger than Len is clamped.
	Search(ctx context.Context, vector []float32, k int) ([]SearchResult, error)

	// Len returns the number of chunks in the index.
	Len() int
}

// Indexer constructs an IndexStore from chunks that already carry embeddings.
type Indexer interface {
	Index(ctx context.Context, key IndexKey, chunks []*Chunk) (IndexStore, error)
}

// IndexBuilder builds the IndexStore for a key from scratch: it loads the
// page, splits it, embeds the chunks and indexes them.
type IndexBuilder interface {
	// Build returns EBUILD on any failure.
	Build(ctx context.Context, key IndexKey) (IndexStore, error)
}
