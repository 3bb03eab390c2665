// Package cache provides ports.CacheStore implementations for fetched
// pages: an in-process store and a Redis store shared between instances.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ahrav/go-hackq/internal/ports"
)

// MemoryStore is an in-process CacheStore with per-entry expiration.
// It is safe for concurrent use.
type MemoryStore struct {
	c *gocache.Cache
}

var _ ports.CacheStore = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore whose entries expire after
// defaultTTL unless Set is given another duration. Expired entries are
// purged every cleanup interval.
func NewMemoryStore(defaultTTL, cleanup time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(defaultTTL, cleanup)}
}

// Get implements ports.CacheStore.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

// Set implements ports.CacheStore. A zero expiration uses the default TTL.
func (m *MemoryStore) Set(_ context.Context, key, value string, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.DefaultExpiration
	}
	m.c.Set(key, value, expiration)
	return nil
}

// Delete implements ports.CacheStore.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Clear implements ports.CacheStore.
func (m *MemoryStore) Clear(context.Context) error {
	m.c.Flush()
	return nil
}

// Len returns the number of entries, including expired ones not yet
// purged.
func (m *MemoryStore) Len() int { return m.c.ItemCount() }
