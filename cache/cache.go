// Package cache persists recently scraped runs on disk so an identical
// (site, query) run within the max age does not spin up another browser
// pass, including across process restarts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/waheed9881/leadflux-backend-sub002/models"
)

// entry is the on-disk layout of one cached run.
type entry struct {
	CreatedAt time.Time     `json:"created_at"`
	Leads     []models.Lead `json:"leads"`
}

// Cache is a disk-backed cache of scrape runs, one JSON file per run.
// Stale and unreadable entries are pruned on access rather than by a
// background sweep, so a short-lived process leaves nothing running.
// It is safe for concurrent use within one process.
type Cache struct {
	mu         sync.Mutex
	dir        string
	maxEntries int
}

// Open prepares a Cache rooted at dir, creating it if needed. An empty dir
// defaults to a "leadflux" directory under the user cache directory.
func Open(dir string, maxEntries int) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache: no user cache directory: %w", err)
		}
		dir = filepath.Join(base, "leadflux")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}
	return &Cache{dir: dir, maxEntries: maxEntries}, nil
}

// Key derives the cache key for one (site, query) run.
func Key(siteKey, query string) string {
	h := sha256.New()
	h.Write([]byte(siteKey))
	h.Write([]byte("|"))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached run for key if it is younger than maxAge. Entries
// past maxAge, and entries that no longer parse, are removed on the spot.
// maxAge <= 0 disables lookup entirely.
func (c *Cache) Get(key string, maxAge time.Duration) ([]models.Lead, bool) {
	if maxAge <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return nil, false
	}
	if time.Since(e.CreatedAt) > maxAge {
		_ = os.Remove(path)
		return nil, false
	}
	return e.Leads, true
}

// Set persists a run. At capacity the oldest entries are evicted to make
// room before writing.
func (c *Cache) Set(key string, leads []models.Lead) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictForRoom()

	data, err := json.Marshal(entry{CreatedAt: time.Now().UTC(), Leads: leads})
	if err != nil {
		return fmt.Errorf("cache: encode run: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("cache: write run: %w", err)
	}
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// evictForRoom removes the oldest entry files (by modification time) until
// one slot is free. Best-effort: an unreadable directory just means no
// eviction happens.
func (c *Cache) evictForRoom() {
	files, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil || len(files) < c.maxEntries {
		return
	}
	sort.Slice(files, func(i, j int) bool {
		fi, errI := os.Stat(files[i])
		fj, errJ := os.Stat(files[j])
		if errI != nil || errJ != nil {
			return errI == nil
		}
		return fi.ModTime().Before(fj.ModTime())
	})
	for i := 0; i <= len(files)-c.maxEntries; i++ {
		_ = os.Remove(files[i])
	}
}
