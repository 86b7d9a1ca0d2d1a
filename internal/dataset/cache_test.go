package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGet(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	cache := NewCache(nil)

	first, err := cache.Get(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, first.RowsAfter)

	// Second call returns the identical cached result.
	second, err := cache.Get(context.Background(), path)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCacheGetSkipsReread(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	cache := NewCache(nil)

	first, err := cache.Get(context.Background(), path)
	require.NoError(t, err)

	// Replace the file; the cache must keep serving the first load.
	require.NoError(t, os.WriteFile(path, []byte("title,abstract,journal,publish_time\nX,,,2022-01-01\n"), 0644))

	second, err := cache.Get(context.Background(), path)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCacheKeyNormalizesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	cache := NewCache(nil)

	first, err := cache.Get(context.Background(), path)
	require.NoError(t, err)

	// A differently spelled but equivalent path hits the same entry.
	dotted := filepath.Join(dir, ".", "metadata.csv")
	second, err := cache.Get(context.Background(), dotted)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCacheGetError(t *testing.T) {
	cache := NewCache(nil)

	_, err := cache.Get(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestCacheConcurrentFirstLoad(t *testing.T) {
	path := writeCSV(t, sampleCSV)
	cache := NewCache(nil)

	const workers = 8
	results := make([]*CleanResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := cache.Get(context.Background(), path)
			if !assert.NoError(t, err) {
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
}
