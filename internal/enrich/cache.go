package enrich

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Cache is a best-effort TTL store for enrichment results. Failures of any
// tier are invisible to callers: a broken cache only means more upstream
// calls, never an error.
type Cache interface {
	Get(key string) (Enrichment, bool)
	Set(key string, e Enrichment)
}

// Key derives the cache key for a wine name: lowercased, whitespace
// collapsed, then hashed so filenames stay safe regardless of input.
func Key(name string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// MemoryCache is the in-process tier.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   Enrichment
	expires time.Time
}

// NewMemoryCache creates a memory tier with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(key string) (Enrichment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Enrichment{}, false
	}
	if time.Now().After(entry.expires) {
		delete(c.entries, key)
		return Enrichment{}, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(key string, e Enrichment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: e, expires: time.Now().Add(c.ttl)}
}

// DiskCache is the on-disk tier: one JSON file per key. Every filesystem
// error is swallowed and reported as a miss.
type DiskCache struct {
	dir string
	ttl time.Duration
}

type diskEntry struct {
	SavedAt time.Time  `json:"savedAt"`
	Value   Enrichment `json:"value"`
}

// NewDiskCache creates a disk tier rooted at dir, creating it if needed.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	_ = os.MkdirAll(dir, 0o755)
	return &DiskCache{dir: dir, ttl: ttl}
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *DiskCache) Get(key string) (Enrichment, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return Enrichment{}, false
	}
	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Enrichment{}, false
	}
	if time.Since(entry.SavedAt) > c.ttl {
		_ = os.Remove(c.path(key))
		return Enrichment{}, false
	}
	return entry.Value, true
}

func (c *DiskCache) Set(key string, e Enrichment) {
	data, err := json.Marshal(diskEntry{SavedAt: time.Now(), Value: e})
	if err != nil {
		return
	}
	_ = os.WriteFile(c.path(key), data, 0o644)
}

// TieredCache checks tiers in order and backfills earlier tiers on a hit
// in a later one.
type TieredCache struct {
	tiers []Cache
}

// NewTieredCache composes caches; the fastest tier goes first.
func NewTieredCache(tiers ...Cache) *TieredCache {
	return &TieredCache{tiers: tiers}
}

func (c *TieredCache) Get(key string) (Enrichment, bool) {
	for i, tier := range c.tiers {
		if v, ok := tier.Get(key); ok {
			for j := 0; j < i; j++ {
				c.tiers[j].Set(key, v)
			}
			return v, true
		}
	}
	return Enrichment{}, false
}

func (c *TieredCache) Set(key string, e Enrichment) {
	for _, tier := range c.tiers {
		tier.Set(key, e)
	}
}
