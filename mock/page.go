package mock

import (
	"context"

	"github.com/fwojciec/pagerag"
)

var _ pagerag.PageLoader = (*PageLoader)(nil)

// PageLoader is a mock implementation of pagerag.PageLoader.
type PageLoader struct {
	LoadFn func(ctx context.Context, url string) (*pagerag.Page, error)
}

func (l *PageLoader) Load(ctx context.Context, url string) (*pagerag.Page, error) {
	return l.LoadFn(ctx, url)
}

var _ pagerag.Chunker = (*Chunker)(nil)

// Chunker is a mock implementation of pagerag.Chunker.
type Chunker struct {
	SplitFn func(text string, size, overlap int) ([]string, error)
}

func (c *Chunker) Split(text string, size, overlap int) ([]string, error) {
	return c.SplitFn(text, size, overlap)
}
