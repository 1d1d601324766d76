package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/artvault/artvault/pkg/apperrors"
	"github.com/artvault/artvault/pkg/cache/inmemory"
	"github.com/artvault/artvault/pkg/cache/redis"
)

const (
	DriverRedis    = "redis"
	DriverInMemory = "memory"
)

// ErrKeyNotFound is wrapped by Get and ZScore of every driver for absent keys.
var ErrKeyNotFound = apperrors.ErrCacheMiss

// NoExpiration keeps a key until it is deleted explicitly.
const NoExpiration time.Duration = 0

// Cache is the key/value, hash and sorted-set surface the stores are built on.
// Implementations must treat deleting an absent key as a no-op, and return an
// empty result (not an error) when reading an absent hash or sorted set.
type Cache interface {
	// Get returns the string value at key, or an error if the key is absent.
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error

	// Keys lists the keys matching a glob style pattern, sorted.
	Keys(ctx context.Context, pattern string) ([]string, error)

	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// ZAdd inserts member or replaces its score.
	ZAdd(ctx context.Context, key string, score float64, member string) error
	// ZRange returns all members ordered by ascending score.
	ZRange(ctx context.Context, key string) ([]string, error)
	ZScore(ctx context.Context, key, member string) (float64, error)

	Ping(ctx context.Context) error
	Close() error
}

// Config selects and configures the cache driver.
type Config struct {
	Driver   string          `mapstructure:"driver"`
	Redis    redis.Config    `mapstructure:"redis"`
	InMemory inmemory.Config `mapstructure:"inmemory"`
}

// New opens the cache configured by cfg. For redis the connection is verified
// before returning so that callers can fail fast.
func New(cfg *Config) (Cache, error) {
	switch cfg.Driver {
	case DriverRedis, "":
		c, err := redis.NewCache(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		return c, nil
	case DriverInMemory:
		c, err := inmemory.NewCache(&cfg.InMemory)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize in-memory cache: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}

// Compile-time interface compliance checks
var (
	_ Cache = (*redis.Cache)(nil)
	_ Cache = (*inmemory.Cache)(nil)
)
