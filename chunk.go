package pagerag

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Chunk represents a section of a page optimized for embedding and retrieval.
type Chunk struct {
	ID        string    `json:"id"`
	Position  int       `json:"position"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if len(c.Embedding) == 0 {
		return Errorf(EINVALID, "chunk %s has no embedding", c.ID)
	}
	return nil
}

// ChunkID derives a stable chunk identifier from the index key and the
// chunk's position within the page.
func ChunkID(key IndexKey, position int) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(fmt.Sprintf("%s#%d", key.String(), position)))
}

// Chunker splits text into overlapping segments.
type Chunker interface {
	// Split returns segments of at most size characters where consecutive
	// segments share up to overlap characters. Callers guarantee
	// 0 <= overlap < size.
	Split(text string, size, overlap int) ([]string, error)
}

// SearchResult represents a search match.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}
