// Package snapcache is the time-bounded, in-process store for analysis
// snapshots between Phase 1 and Phase 2. It is explicitly constructed and
// injected; there is no process-wide instance.
package snapcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mnemo-dev/mnemo/internal/analysis"
)

var (
	// ErrNotFound means the key was never stored or was already removed.
	ErrNotFound = errors.New("analysis not found")
	// ErrExpired means the entry outlived its TTL; the caller must restart
	// from Phase 1.
	ErrExpired = errors.New("analysis expired")
)

type entry struct {
	snapshot *analysis.Snapshot
	seq      uint64
	expires  time.Time
}

// Cache maps opaque keys to snapshots with a TTL and a capacity bound.
// Reads never refresh the TTL. All operations are mutex-guarded so the
// background sweep can interleave safely with lookups.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	seq      uint64
	entries  map[string]*entry
	now      func() time.Time
}

// New creates a cache with the given TTL and capacity.
func New(ttl time.Duration, capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]*entry),
		now:      time.Now,
	}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Store inserts a snapshot under a freshly generated key and returns the
// key together with the entry's expiry. At capacity, the oldest quartile by
// insertion order is evicted first. Already-expired entries are swept
// opportunistically.
func (c *Cache) Store(snapshot *analysis.Snapshot) (string, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	if len(c.entries) >= c.capacity {
		c.evictOldestLocked()
	}

	key := newKey(snapshot.Root)
	expires := now.Add(c.ttl)
	c.seq++
	c.entries[key] = &entry{
		snapshot: snapshot,
		seq:      c.seq,
		expires:  expires,
	}
	return key, expires
}

// Retrieve returns the snapshot for a live key. Expired entries are
// evicted and reported as ErrExpired; reads are not touches.
func (c *Cache) Retrieve(key string) (*analysis.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, ErrExpired
	}
	return e.snapshot, nil
}

// Exists reports whether the key is live, evicting it when expired.
func (c *Cache) Exists(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return false
	}
	return true
}

// Extend pushes a live entry's expiry forward and reports whether it did.
func (c *Cache) Extend(key string, d time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expires) {
		return false
	}
	e.expires = e.expires.Add(d)
	return true
}

// Clear removes one entry.
func (c *Cache) Clear(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// ClearAll removes every entry.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper launches the periodic background sweep that removes expired
// entries independent of lookups. The returned function stops it.
func (c *Cache) StartSweeper(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.mu.Lock()
				c.sweepLocked(c.now())
				c.mu.Unlock()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

func (c *Cache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
		}
	}
}

// evictOldestLocked removes the oldest 25% of capacity by insertion order,
// at least one entry.
func (c *Cache) evictOldestLocked() {
	count := c.capacity / 4
	if count < 1 {
		count = 1
	}

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return c.entries[keys[i]].seq < c.entries[keys[j]].seq
	})

	if count > len(keys) {
		count = len(keys)
	}
	for _, key := range keys[:count] {
		delete(c.entries, key)
	}
}

// newKey combines a hash of the root path with a ULID (timestamp plus
// entropy). Uniqueness is probabilistic; collisions are not detected.
func newKey(root string) string {
	sum := sha256.Sum256([]byte(root))
	return hex.EncodeToString(sum[:8]) + "-" + ulid.Make().String()
}
