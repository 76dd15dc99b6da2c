package sqlite

import (
	"context"
	"sort"
	"time"

	"github.com/fwojciec/pagerag"
)

// Compile-time interface verification.
var (
	_ pagerag.Indexer    = (*Indexer)(nil)
	_ pagerag.IndexStore = (*Store)(nil)
)

// Indexer implements pagerag.Indexer using SQLite.
type Indexer struct {
	db *DB
}

// NewIndexer creates a new Indexer.
func NewIndexer(db *DB) *Indexer {
	return &Indexer{db: db}
}

// Index writes chunks under the key fingerprint, replacing any previous
// index with the same key.
func (i *Indexer) Index(ctx context.Context, key pagerag.IndexKey, chunks []*pagerag.Chunk) (pagerag.IndexStore, error) {
	if len(chunks) == 0 {
		return nil, pagerag.Errorf(pagerag.EEMPTY, "no chunks to index")
	}
	dims := len(chunks[0].Embedding)
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if len(c.Embedding) != dims {
			return nil, pagerag.Errorf(pagerag.EINVALID, "chunk %s has %d dimensions, expected %d", c.ID, len(c.Embedding), dims)
		}
	}

	id := key.Fingerprint()

	tx, err := i.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM indexes WHERE id = ?`, id); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO indexes (id, url, chunk_size, chunk_overlap, dimensions, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, key.URL, key.ChunkSize, key.ChunkOverlap, dims, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, index_id, position, content, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.ID, id, c.Position, c.Content, encodeEmbedding(c.Embedding)); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Store{db: i.db, id: id, dims: dims, count: len(chunks)}, nil
}

// Store is a read-only view of one index.
type Store struct {
	db    *DB
	id    string
	dims  int
	count int
}

// Search scores every chunk of the index by cosine similarity and returns
// the best k.
func (s *Store) Search(ctx context.Context, vector []float32, k int) ([]pagerag.SearchResult, error) {
	if len(vector) != s.dims {
		return nil, pagerag.Errorf(pagerag.EINVALID, "query has %d dimensions, index has %d", len(vector), s.dims)
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, position, content, embedding
		FROM chunks
		WHERE index_id = ?
		ORDER BY position ASC
	`, s.id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []pagerag.SearchResult
	for rows.Next() {
		var c pagerag.Chunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.Position, &c.Content, &blob); err != nil {
			return nil, err
		}
		if c.Embedding, err = decodeEmbedding(blob); err != nil {
			return nil, err
		}
		results = append(results, pagerag.SearchResult{Chunk: &c, Score: cosine(vector, c.Embedding)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Len returns the number of chunks in the index.
func (s *Store) Len() int {
	return s.count
}
