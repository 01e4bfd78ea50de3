// Package cache stores per-file analysis results keyed by content hash,
// with LRU eviction and msgpack disk persistence, so directory analysis
// skips files that have not changed between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/l3aro/go-flowchart/pkg/flowgraph"
)

// ErrNoCacheFile is returned by LoadFile when the cache file does not exist.
var ErrNoCacheFile = errors.New("cache file not found")

// format version written to disk; bump on incompatible layout changes.
const formatVersion = 1

// Analysis is one cached per-file result.
type Analysis struct {
	Path    string            `msgpack:"path"`
	Metrics flowgraph.Metrics `msgpack:"metrics"`
	DOT     string            `msgpack:"dot"`
}

// HashBytes returns the cache key for a file's content.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Options configures the cache.
type Options struct {
	// MaxEntries is the eviction threshold. Zero means unlimited.
	MaxEntries int
}

type entry struct {
	analysis Analysis
	lastUsed uint64
}

// Cache is a mutex-guarded LRU map from content hash to analysis result.
// It is safe for concurrent use; everything else in the pipeline is
// single-threaded.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	clock   uint64
	max     int
}

// New creates an empty cache.
func New(opts Options) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		max:     opts.MaxEntries,
	}
}

// Get retrieves a cached analysis by content hash.
func (c *Cache) Get(key string) (Analysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Analysis{}, false
	}
	c.clock++
	e.lastUsed = c.clock
	return e.analysis, true
}

// Set stores an analysis, evicting the least recently used entry when the
// cache is full.
func (c *Cache) Set(key string, a Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock++
	if e, ok := c.entries[key]; ok {
		e.analysis = a
		e.lastUsed = c.clock
		return
	}

	if c.max > 0 && len(c.entries) >= c.max {
		c.evictLocked()
	}
	c.entries[key] = &entry{analysis: a, lastUsed: c.clock}
}

// evictLocked removes the least recently used entry. Linear scan: caches
// hold one entry per source file, so n stays small.
func (c *Cache) evictLocked() {
	var oldestKey string
	var oldest uint64
	first := true
	for key, e := range c.entries {
		if first || e.lastUsed < oldest {
			oldestKey, oldest = key, e.lastUsed
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of cached analyses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// diskEntry pairs a key with its analysis for persistence.
type diskEntry struct {
	Key      string   `msgpack:"key"`
	Analysis Analysis `msgpack:"analysis"`
}

type diskFormat struct {
	Version int         `msgpack:"version"`
	Entries []diskEntry `msgpack:"entries"`
}

// Save persists the cache as msgpack. Recency is not preserved; a reloaded
// cache starts with a fresh access order.
func (c *Cache) Save(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data := diskFormat{Version: formatVersion}
	for key, e := range c.entries {
		data.Entries = append(data.Entries, diskEntry{Key: key, Analysis: e.analysis})
	}

	if err := msgpack.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	return nil
}

// Load restores entries from msgpack, replacing the current contents.
func (c *Cache) Load(r io.Reader) error {
	var data diskFormat
	if err := msgpack.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("decoding cache: %w", err)
	}
	if data.Version != formatVersion {
		return fmt.Errorf("unsupported cache format version %d", data.Version)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry, len(data.Entries))
	c.clock = 0
	for _, de := range data.Entries {
		c.clock++
		c.entries[de.Key] = &entry{analysis: de.Analysis, lastUsed: c.clock}
	}
	return nil
}

// SaveFile writes the cache to path, creating parent directories as needed.
func (c *Cache) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()

	return c.Save(f)
}

// LoadFile reads the cache from path. A missing file yields ErrNoCacheFile,
// which callers treat as an empty cache.
func (c *Cache) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoCacheFile
		}
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()

	return c.Load(f)
}
