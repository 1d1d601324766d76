package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCache(&Config{
		DefaultExpiration: 300,
		CleanupInterval:   600,
	})
	require.NoError(t, err)
	return c
}

func TestNewCache_RejectsNegativeIntervals(t *testing.T) {
	_, err := NewCache(&Config{DefaultExpiration: -1})
	assert.Error(t, err)
}

func TestCache_GetSetDelete(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "meta:missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, c.Set(ctx, "meta:key", "value", 0))
	val, err := c.Get(ctx, "meta:key")
	require.NoError(t, err)
	assert.Equal(t, "value", val)

	require.NoError(t, c.Delete(ctx, "meta:key"))
	require.NoError(t, c.Delete(ctx, "meta:key"))
	_, err = c.Get(ctx, "meta:key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCache_WrongType(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.HSet(ctx, "artworkDetails:1", map[string]string{"title": "Dawn"}))

	_, err := c.Get(ctx, "artworkDetails:1")
	assert.ErrorIs(t, err, ErrWrongType)

	err = c.ZAdd(ctx, "artworkDetails:1", 1, "x")
	assert.ErrorIs(t, err, ErrWrongType)

	require.NoError(t, c.ZAdd(ctx, "productiveArtistArtworks:1:Ada", 1, "x"))
	_, err = c.HGetAll(ctx, "productiveArtistArtworks:1:Ada")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestCache_Keys(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.HSet(ctx, "artworkDetails:b", map[string]string{"title": "B"}))
	require.NoError(t, c.HSet(ctx, "artworkDetails:a", map[string]string{"title": "A"}))
	require.NoError(t, c.ZAdd(ctx, "productiveArtistArtworks:1:A/B Studio", 1, "a"))
	require.NoError(t, c.Set(ctx, "meta:x", "1", 0))

	keys, err := c.Keys(ctx, "artworkDetails:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"artworkDetails:a", "artworkDetails:b"}, keys)

	keys, err = c.Keys(ctx, "productiveArtistArtworks:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"productiveArtistArtworks:1:A/B Studio"}, keys)

	keys, err = c.Keys(ctx, "artworkDetails:?")
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	keys, err = c.Keys(ctx, "artworkDetails.*")
	require.NoError(t, err)
	assert.Empty(t, keys, "regexp metacharacters in the pattern are literal")
}

func TestCache_Hash(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	got, err := c.HGetAll(ctx, "artworkDetails:none")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, c.HSet(ctx, "artworkDetails:1", map[string]string{"title": "Dawn", "price": "10"}))
	require.NoError(t, c.HSet(ctx, "artworkDetails:1", map[string]string{"price": "12"}))

	got, err = c.HGetAll(ctx, "artworkDetails:1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"title": "Dawn", "price": "12"}, got)

	got["title"] = "mutated"
	again, err := c.HGetAll(ctx, "artworkDetails:1")
	require.NoError(t, err)
	assert.Equal(t, "Dawn", again["title"], "returned maps are copies")
}

func TestCache_SortedSet(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()
	key := "productiveArtistArtworks:1:Ada"

	members, err := c.ZRange(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, members)

	require.NoError(t, c.ZAdd(ctx, key, 2, "b"))
	require.NoError(t, c.ZAdd(ctx, key, 1, "z"))
	require.NoError(t, c.ZAdd(ctx, key, 2, "a"))

	members, err = c.ZRange(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "b"}, members)

	require.NoError(t, c.ZAdd(ctx, key, 0, "b"))
	score, err := c.ZScore(ctx, key, "b")
	require.NoError(t, err)
	assert.Equal(t, float64(0), score)

	_, err = c.ZScore(ctx, key, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCache_ConcurrentZAdd(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()
	key := "productiveArtistArtworks:1:Ada"

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.ZAdd(ctx, key, float64(i), fmt.Sprintf("m%02d", i)))
		}(i)
	}
	wg.Wait()

	members, err := c.ZRange(ctx, key)
	require.NoError(t, err)
	assert.Len(t, members, 50)
	assert.Equal(t, "m00", members[0])
	assert.Equal(t, "m49", members[49])
}

func TestCache_Close(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "meta:x", "1", 0))
	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Close())

	_, err := c.Get(ctx, "meta:x")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
