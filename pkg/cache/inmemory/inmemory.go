package inmemory

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/artvault/artvault/pkg/apperrors"
)

var (
	// ErrKeyNotFound is returned by Get for absent keys.
	ErrKeyNotFound = apperrors.ErrCacheMiss
	// ErrWrongType mirrors redis WRONGTYPE for a key holding another kind of value.
	ErrWrongType = errors.New("operation against a key holding the wrong kind of value")
)

// Config holds go-cache settings, both in seconds. Zero disables expiry and
// the janitor respectively.
type Config struct {
	DefaultExpiration int64 `mapstructure:"default_expiration"`
	CleanupInterval   int64 `mapstructure:"cleanup_interval"`
}

// Cache is a process-local cache.Cache. Hashes and sorted sets are held as
// maps inside go-cache items; mu serializes their read-modify-write cycles.
type Cache struct {
	mu    sync.Mutex
	store *gocache.Cache
}

type sortedSet map[string]float64

// NewCache creates an empty in-memory cache.
func NewCache(cfg *Config) (*Cache, error) {
	if cfg.DefaultExpiration < 0 || cfg.CleanupInterval < 0 {
		return nil, fmt.Errorf("in-memory cache intervals must not be negative")
	}

	defaultExpiration := gocache.NoExpiration
	if cfg.DefaultExpiration > 0 {
		defaultExpiration = time.Duration(cfg.DefaultExpiration) * time.Second
	}

	return &Cache{
		store: gocache.New(defaultExpiration, time.Duration(cfg.CleanupInterval)*time.Second),
	}, nil
}

func expiry(expiration time.Duration) time.Duration {
	if expiration <= 0 {
		return gocache.NoExpiration
	}
	return expiration
}

func (c *Cache) Get(_ context.Context, key string) (interface{}, error) {
	val, ok := c.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrKeyNotFound)
	}
	str, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrWrongType)
	}
	return str, nil
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.store.Set(key, fmt.Sprint(value), expiry(expiration))
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

func (c *Cache) Keys(_ context.Context, pattern string) ([]string, error) {
	re, err := globToRegexp(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid key pattern %s: %w", pattern, err)
	}

	keys := make([]string, 0)
	for key := range c.store.Items() {
		if re.MatchString(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (c *Cache) HSet(_ context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.hash(key)
	if err != nil {
		return err
	}
	// copy so readers holding the old map never observe the write
	updated := make(map[string]string, len(current)+len(fields))
	for k, v := range current {
		updated[k] = v
	}
	for k, v := range fields {
		updated[k] = v
	}
	c.store.Set(key, updated, gocache.NoExpiration)
	return nil
}

func (c *Cache) HGetAll(_ context.Context, key string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.hash(key)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(current))
	for k, v := range current {
		out[k] = v
	}
	return out, nil
}

func (c *Cache) ZAdd(_ context.Context, key string, score float64, member string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.zset(key)
	if err != nil {
		return err
	}
	updated := make(sortedSet, len(current)+1)
	for m, s := range current {
		updated[m] = s
	}
	updated[member] = score
	c.store.Set(key, updated, gocache.NoExpiration)
	return nil
}

// ZRange orders by score, then by member, which is how redis breaks ties.
func (c *Cache) ZRange(_ context.Context, key string) ([]string, error) {
	c.mu.Lock()
	current, err := c.zset(key)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(current))
	for m := range current {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		si, sj := current[members[i]], current[members[j]]
		if si != sj {
			return si < sj
		}
		return members[i] < members[j]
	})
	return members, nil
}

func (c *Cache) ZScore(_ context.Context, key, member string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.zset(key)
	if err != nil {
		return 0, err
	}
	score, ok := current[member]
	if !ok {
		return 0, fmt.Errorf("%s in %s: %w", member, key, ErrKeyNotFound)
	}
	return score, nil
}

func (c *Cache) Ping(context.Context) error {
	return nil
}

func (c *Cache) Close() error {
	c.store.Flush()
	return nil
}

// hash and zset must be called with mu held.
func (c *Cache) hash(key string) (map[string]string, error) {
	val, ok := c.store.Get(key)
	if !ok {
		return nil, nil
	}
	h, ok := val.(map[string]string)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrWrongType)
	}
	return h, nil
}

func (c *Cache) zset(key string) (sortedSet, error) {
	val, ok := c.store.Get(key)
	if !ok {
		return nil, nil
	}
	z, ok := val.(sortedSet)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrWrongType)
	}
	return z, nil
}

// globToRegexp supports the redis glob subset used by the stores: * and ?.
func globToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
