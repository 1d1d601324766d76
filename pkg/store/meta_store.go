package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artvault/artvault/pkg/cache"
)

// MetaStore handles all metadata-related cache operations with "meta:" prefix
// Metadata includes sync completion times and ranking policy tags
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type MetaStore struct {
	cache cache.Cache
}

// newMetaStore creates a new MetaStore instance
func newMetaStore(c cache.Cache) *MetaStore {
	return &MetaStore{
		cache: c,
	}
}

// metaKey returns the prefixed cache key for metadata
func (s *MetaStore) metaKey(key string) string {
	return metaPrefix + key
}

func lastSyncKey(procedure string) string {
	return "lastSync:" + procedure
}

func rankingPolicyKey(rankingKey string) string {
	return "rankingPolicy:" + rankingKey
}

// GetLastSync returns when a sync procedure last completed
func (s *MetaStore) GetLastSync(ctx context.Context, procedure string) (time.Time, bool, error) {
	val, err := s.Get(ctx, lastSyncKey(procedure))
	if errors.Is(err, cache.ErrKeyNotFound) {
		// Never synced, not an error condition
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	at, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse last sync time for %s: %w", procedure, err)
	}
	return at, true, nil
}

// SetLastSync records the completion time of a sync procedure
func (s *MetaStore) SetLastSync(ctx context.Context, procedure string, at time.Time) error {
	return s.Set(ctx, lastSyncKey(procedure), at.UTC().Format(time.RFC3339Nano))
}

// GetRankingPolicy returns the policy tag of a ranking key
// Returns "" if the ranking was never tagged
func (s *MetaStore) GetRankingPolicy(ctx context.Context, rankingKey string) (ScoringPolicy, error) {
	val, err := s.Get(ctx, rankingPolicyKey(rankingKey))
	if errors.Is(err, cache.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	policy := ScoringPolicy(val)
	switch policy {
	case PolicyTimestamp, PolicyPosition:
		return policy, nil
	default:
		return "", fmt.Errorf("unknown scoring policy %q for %s", val, rankingKey)
	}
}

// SetRankingPolicy tags a ranking key with a scoring policy
func (s *MetaStore) SetRankingPolicy(ctx context.Context, rankingKey string, policy ScoringPolicy) error {
	return s.Set(ctx, rankingPolicyKey(rankingKey), string(policy))
}

// DeleteRankingPolicy removes the policy tag of a ranking key
func (s *MetaStore) DeleteRankingPolicy(ctx context.Context, rankingKey string) error {
	return s.Delete(ctx, rankingPolicyKey(rankingKey))
}

// Get retrieves a generic metadata value by key
// NOTE: Caller must hold appropriate lock if concurrent access is possible
func (s *MetaStore) Get(ctx context.Context, key string) (string, error) {
	metaKey := s.metaKey(key)
	val, err := s.cache.Get(ctx, metaKey)
	if err != nil {
		return "", fmt.Errorf("failed to get meta key %s: %w", key, err)
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("meta key %s does not hold a string", key)
	}
	return str, nil
}

// Set stores a generic metadata value by key
// NOTE: Caller must hold appropriate lock if concurrent access is possible
func (s *MetaStore) Set(ctx context.Context, key, value string) error {
	metaKey := s.metaKey(key)
	if err := s.cache.Set(ctx, metaKey, value, cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to set meta key %s: %w", key, err)
	}

	return nil
}

// Delete removes a metadata entry
// NOTE: Caller must hold appropriate lock if concurrent access is possible
func (s *MetaStore) Delete(ctx context.Context, key string) error {
	metaKey := s.metaKey(key)
	if err := s.cache.Delete(ctx, metaKey); err != nil {
		return fmt.Errorf("failed to delete meta key %s: %w", key, err)
	}
	return nil
}
