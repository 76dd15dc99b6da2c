package rag

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/pagerag"
	"golang.org/x/sync/singleflight"
)

// DefaultBuildTimeout bounds a shared index build.
const DefaultBuildTimeout = 5 * time.Minute

// BuildFunc builds the index for a cache miss.
type BuildFunc func(ctx context.Context) (pagerag.IndexStore, error)

// IndexCache holds the indexes built during the process lifetime, keyed by
// page URL and chunking parameters. Concurrent requests for the same
// missing key share a single build. Failed builds are not cached.
//
// A shared build is detached from the caller that started it: a waiter
// whose context ends stops waiting, but the build carries on for the
// others until it finishes or BuildTimeout passes.
//
// Entries are never evicted.
type IndexCache struct {
	BuildTimeout time.Duration

	mu     sync.RWMutex
	stores map[pagerag.IndexKey]pagerag.IndexStore
	group  singleflight.Group
}

// NewIndexCache returns an empty cache.
func NewIndexCache() *IndexCache {
	return &IndexCache{
		BuildTimeout: DefaultBuildTimeout,
		stores:       make(map[pagerag.IndexKey]pagerag.IndexStore),
	}
}

// Get returns the cached index for key, if any.
func (c *IndexCache) Get(key pagerag.IndexKey) (pagerag.IndexStore, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stores[key]
	return s, ok
}

// GetOrBuild returns the cached index for key, calling build on a miss.
// The first successful build for a key wins; later lookups return it.
func (c *IndexCache) GetOrBuild(ctx context.Context, key pagerag.IndexKey, build BuildFunc) (pagerag.IndexStore, error) {
	if s, ok := c.Get(key); ok {
		return s, nil
	}

	ch := c.group.DoChan(key.String(), func() (any, error) {
		if s, ok := c.Get(key); ok {
			return s, nil
		}

		bctx := context.WithoutCancel(ctx)
		if c.BuildTimeout > 0 {
			var cancel context.CancelFunc
			bctx, cancel = context.WithTimeout(bctx, c.BuildTimeout)
			defer cancel()
		}

		s, err := build(bctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if existing, ok := c.stores[key]; ok {
			return existing, nil
		}
		c.stores[key] = s
		return s, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(pagerag.IndexStore), nil
	}
}

// Len returns the number of cached indexes.
func (c *IndexCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stores)
}
