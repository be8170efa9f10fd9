package extract

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoises extraction results by template content digest.
type Cache struct {
	ex  *Extractor
	lru *lru.Cache[[32]byte, Source]
}

// NewCache keeps up to size results.
func NewCache(size int, ex *Extractor) (*Cache, error) {
	l, err := lru.New[[32]byte, Source](size)
	if err != nil {
		return nil, fmt.Errorf("extract cache: %w", err)
	}
	if ex == nil {
		ex = New(Options{})
	}
	return &Cache{ex: ex, lru: l}, nil
}

// Extract returns the cached result for digest or extracts raw.
func (c *Cache) Extract(digest [32]byte, raw []any) Source {
	if src, ok := c.lru.Get(digest); ok {
		return src
	}
	src := c.ex.Extract(raw)
	c.lru.Add(digest, src)
	return src
}

// Len is the number of cached results.
func (c *Cache) Len() int { return c.lru.Len() }
