package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes load-and-clean per metadata file path for the lifetime
// of the process. There is no invalidation: the dataset is static and a
// restart picks up a replaced file. Concurrent first requests for the
// same path share a single read via singleflight.
type Cache struct {
	logger *slog.Logger

	mu      sync.RWMutex
	cleaned map[string]*CleanResult
	group   singleflight.Group
}

// NewCache creates an empty load cache.
func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		logger:  logger.With(slog.String("component", "dataset_cache")),
		cleaned: make(map[string]*CleanResult),
	}
}

// Get returns the cleaned table for the given path, loading and cleaning
// it on first use. Paths are keyed in absolute form so equivalent
// relative spellings hit the same entry.
func (c *Cache) Get(ctx context.Context, path string) (*CleanResult, error) {
	key := cacheKey(path)

	c.mu.RLock()
	if result, ok := c.cleaned[key]; ok {
		c.mu.RUnlock()
		return result, nil
	}
	c.mu.RUnlock()

	value, err, shared := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: a previous flight may have
		// populated the entry between the RUnlock and here.
		c.mu.RLock()
		if result, ok := c.cleaned[key]; ok {
			c.mu.RUnlock()
			return result, nil
		}
		c.mu.RUnlock()

		raw, err := Load(ctx, path)
		if err != nil {
			return nil, err
		}

		result := NewCleaner(c.logger).Clean(ctx, raw)

		c.mu.Lock()
		c.cleaned[key] = result
		c.mu.Unlock()

		c.logger.InfoContext(ctx, "dataset cached",
			slog.String("path", path),
			slog.Int("rows", result.RowsAfter))

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		c.logger.DebugContext(ctx, "load shared with concurrent caller",
			slog.String("path", path))
	}

	return value.(*CleanResult), nil
}

// cacheKey normalizes a path into its cache key.
func cacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
