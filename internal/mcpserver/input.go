package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasmodels/internal/options"
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/reader"
	"github.com/erraggy/oasmodels/source"
)

// manifestInput represents the two ways a manifest can be provided to a tool.
// Exactly one of File or Content must be set.
type manifestInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a manifest file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline manifest content (JSON or YAML)"`
}

// loadedManifest is a parsed manifest with its catalog-backed source and scan.
// It is immutable once built, so cached values are shared across calls.
type loadedManifest struct {
	source    *source.Source
	scan      *reader.Scan
	ignorable []model.ResolvedType
}

// cacheEntry holds a cached manifest with LRU ordering and TTL expiry.
type cacheEntry struct {
	loaded    *loadedManifest
	insertAt  time.Time
	expiresAt time.Time
}

// manifestCacheStore provides a session-scoped cache for loaded manifests.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash.
type manifestCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var manifestCache = &manifestCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached manifest or nil. Expired entries are lazily removed.
func (c *manifestCacheStore) get(key string) *loadedManifest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.loaded
	}
	return nil
}

// putWithTTL stores a manifest, evicting the least recently used entry if at capacity.
func (c *manifestCacheStore) putWithTTL(key string, loaded *loadedManifest, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{loaded: loaded, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *manifestCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled.
func (c *manifestCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *manifestCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *manifestCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given manifest input.
func makeCacheKey(m manifestInput) string {
	switch {
	case m.File != "":
		absPath, err := filepath.Abs(m.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case m.Content != "":
		h := sha256.Sum256([]byte(m.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve loads the manifest from whichever input was provided, using the
// cache when enabled.
func (m manifestInput) resolve() (*loadedManifest, error) {
	if err := options.RequireExactlyOne(
		options.Input{Name: "file", Set: m.File != ""},
		options.Input{Name: "content", Set: m.Content != ""},
	); err != nil {
		return nil, err
	}
	if m.Content != "" && int64(len(m.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASMODELS_MAX_INLINE_SIZE to increase",
			len(m.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(m)
		ttl = cfg.CacheContentTTL
		if m.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := manifestCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var manifest *source.Manifest
	var err error
	if m.File != "" {
		manifest, err = source.LoadManifest(m.File)
	} else {
		manifest, err = source.ParseManifest([]byte(m.Content))
	}
	if err != nil {
		return nil, err
	}
	loaded, err := load(manifest)
	if err != nil {
		return nil, err
	}

	if key != "" {
		manifestCache.putWithTTL(key, loaded, ttl)
	}
	return loaded, nil
}

func load(manifest *source.Manifest) (*loadedManifest, error) {
	catalog, err := manifest.Catalog()
	if err != nil {
		return nil, err
	}
	src := source.New(catalog)
	scan, err := manifest.Scan(src)
	if err != nil {
		return nil, err
	}
	ignorable, err := manifest.IgnorableTypes(src)
	if err != nil {
		return nil, err
	}
	return &loadedManifest{source: src, scan: scan, ignorable: ignorable}, nil
}
