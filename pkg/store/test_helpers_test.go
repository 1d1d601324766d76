package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/cache/inmemory"
	"github.com/artvault/artvault/pkg/cache/redis"
)

// cacheBackend builds a fresh cache for a single test case
type cacheBackend struct {
	Name string
	New  func(t *testing.T) cache.Cache
}

// cacheBackends returns every cache driver the stores must behave the same on
func cacheBackends() []cacheBackend {
	return []cacheBackend{
		{
			Name: "inmemory",
			New: func(t *testing.T) cache.Cache {
				t.Helper()
				c, err := inmemory.NewCache(&inmemory.Config{
					DefaultExpiration: 300,
					CleanupInterval:   600,
				})
				require.NoError(t, err)
				return c
			},
		},
		{
			Name: "redis",
			New: func(t *testing.T) cache.Cache {
				t.Helper()
				mr := miniredis.RunT(t)
				c, err := redis.NewCache(&redis.Config{Host: mr.Host(), Port: mr.Port()})
				require.NoError(t, err)
				t.Cleanup(func() { _ = c.Close() })
				return c
			},
		},
	}
}

// runOnBackends runs fn once per cache driver as a named subtest
func runOnBackends(t *testing.T, fn func(t *testing.T, c cache.Cache)) {
	t.Helper()
	for _, backend := range cacheBackends() {
		t.Run(backend.Name, func(t *testing.T) {
			fn(t, backend.New(t))
		})
	}
}

// failingGetCache wraps a cache and fails every Get with err
type failingGetCache struct {
	cache.Cache
	err error
}

func (f *failingGetCache) Get(_ context.Context, _ string) (interface{}, error) {
	return nil, f.err
}
