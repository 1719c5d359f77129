package fetch

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached wraps a Fetcher with a process-wide LRU byte cache keyed by URL.
// This is distinct from the engine's per-tree dedup set: dedup prevents a
// URL being expanded twice within one tree, the cache spans trees.
type Cached struct {
	inner Fetcher
	lru   *lru.Cache[string, []byte]
}

func NewCached(inner Fetcher, entries int) (*Cached, error) {
	if entries <= 0 {
		entries = 256
	}
	c, err := lru.New[string, []byte](entries)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, lru: c}, nil
}

func (c *Cached) Fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.lru.Get(url); ok {
		return body, nil
	}
	body, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	c.lru.Add(url, body)
	return body, nil
}
