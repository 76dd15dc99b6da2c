// Package chromem implements an in-memory vector index on chromem-go.
package chromem

import (
	"context"
	"runtime"
	"strconv"

	"github.com/fwojciec/pagerag"
	"github.com/philippgille/chromem-go"
)

// Ensure types implement interfaces at compile time.
var (
	_ pagerag.Indexer    = (*Indexer)(nil)
	_ pagerag.IndexStore = (*Store)(nil)
)

// Indexer creates one collection per index key inside a shared database.
type Indexer struct {
	db *chromem.DB
}

// NewIndexer returns an Indexer backed by a fresh in-memory database.
func NewIndexer() *Indexer {
	return &Indexer{db: chromem.NewDB()}
}

// Index stores chunks in a collection named after the key fingerprint.
// Chunks must carry embeddings; none are computed here.
func (i *Indexer) Index(ctx context.Context, key pagerag.IndexKey, chunks []*pagerag.Chunk) (pagerag.IndexStore, error) {
	if len(chunks) == 0 {
		return nil, pagerag.Errorf(pagerag.EEMPTY, "no chunks to index")
	}

	docs := make([]chromem.Document, len(chunks))
	for n, c := range chunks {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		docs[n] = chromem.Document{
			ID:        c.ID,
			Content:   c.Content,
			Embedding: c.Embedding,
			Metadata:  map[string]string{"position": strconv.Itoa(c.Position)},
		}
	}

	coll, err := i.db.CreateCollection(key.Fingerprint(), map[string]string{"url": key.URL}, nil)
	if err != nil {
		return nil, err
	}
	if err := coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, err
	}

	return &Store{coll: coll}, nil
}

// Store is a read-only view of one collection.
type Store struct {
	coll *chromem.Collection
}

// Search returns up to k chunks ordered by cosine similarity.
func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]pagerag.SearchResult, error) {
	n := min(k, s.coll.Count())
	if n <= 0 {
		return nil, nil
	}

	results, err := s.coll.QueryEmbedding(ctx, vector, n, nil, nil)
	if err != nil {
		return nil, err
	}

	out := make([]pagerag.SearchResult, len(results))
	for i, r := range results {
		pos, _ := strconv.Atoi(r.Metadata["position"])
		out[i] = pagerag.SearchResult{
			Chunk: &pagerag.Chunk{
				ID:        r.ID,
				Position:  pos,
				Content:   r.Content,
				Embedding: r.Embedding,
			},
			Score: r.Similarity,
		}
	}
	return out, nil
}

// Len returns the number of chunks in the collection.
func (s *Store) Len() int {
	return s.coll.Count()
}
