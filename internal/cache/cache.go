// Package cache holds the last full scan result per principal, bounded by
// a fixed TTL. It is a pure in-memory performance optimization: entries are
// lost on restart and expiry is enforced lazily at lookup time.
package cache

import (
	"sync"
	"time"

	"github.com/ptiller/driveorg/internal/domain"
)

// DefaultTTL is the validity window of an entry after Put.
const DefaultTTL = 300 * time.Second

// Entry is a cached scan snapshot. Callers always receive copies; the
// cache never hands out its own slices.
type Entry struct {
	Folders   []domain.FolderNode
	Paths     []string
	ExpiresAt time.Time
}

// FolderCache is a per-principal TTL cache of scan results. Safe for
// concurrent use.
type FolderCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a FolderCache.
type Option func(*FolderCache)

// WithTTL overrides the default entry TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *FolderCache) { c.ttl = ttl }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *FolderCache) { c.now = now }
}

// New returns an empty cache.
func New(opts ...Option) *FolderCache {
	c := &FolderCache{
		entries: make(map[string]*Entry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the principal's entry, or ok=false on a miss.
// Expired entries are removed and reported as plain misses.
func (c *FolderCache) Get(principalID string) (Entry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[principalID]
	c.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}

	if !c.now().Before(entry.ExpiresAt) {
		// Lazy expiry. Re-check under the write lock in case a
		// concurrent Put replaced the entry.
		c.mu.Lock()
		if current, stillThere := c.entries[principalID]; stillThere && current == entry {
			delete(c.entries, principalID)
		}
		c.mu.Unlock()
		return Entry{}, false
	}

	return Entry{
		Folders:   copyFolders(entry.Folders),
		Paths:     copyPaths(entry.Paths),
		ExpiresAt: entry.ExpiresAt,
	}, true
}

// Put replaces the principal's entry wholesale. The stored entry owns
// copies of the inputs, so later caller mutations cannot corrupt it.
func (c *FolderCache) Put(principalID string, folders []domain.FolderNode, paths []string) {
	entry := &Entry{
		Folders:   copyFolders(folders),
		Paths:     copyPaths(paths),
		ExpiresAt: c.now().Add(c.ttl),
	}

	c.mu.Lock()
	c.entries[principalID] = entry
	c.mu.Unlock()
}

// Invalidate removes the principal's entry. Called after any operation
// that mutates remote folder structure so the next scan hits the store.
func (c *FolderCache) Invalidate(principalID string) {
	c.mu.Lock()
	delete(c.entries, principalID)
	c.mu.Unlock()
}

// Sweep removes every expired entry and returns how many were dropped.
func (c *FolderCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for principal, entry := range c.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(c.entries, principal)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries, including not-yet-swept expired ones.
func (c *FolderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func copyFolders(folders []domain.FolderNode) []domain.FolderNode {
	out := make([]domain.FolderNode, len(folders))
	copy(out, folders)
	return out
}

func copyPaths(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}
