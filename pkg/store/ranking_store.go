package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artvault/artvault/pkg/cache"
)

// ErrDuplicateArtwork is returned by Put when an artwork ID repeats.
var ErrDuplicateArtwork = errors.New("artwork appears more than once in ranking")

// ScoringPolicy tells how the scores of a ranking were produced
type ScoringPolicy string

const (
	// PolicyTimestamp scores by artwork creation time in unix milliseconds (bulk sync)
	PolicyTimestamp ScoringPolicy = "timestamp"
	// PolicyPosition scores by position in a caller supplied sequence (manual writes)
	PolicyPosition ScoringPolicy = "position"
)

// RankingStore handles productive artist rankings with "productiveArtistArtworks:" prefix
// Key format: "productiveArtistArtworks:<artistId>:<artistName>"
// Value: sorted set of artwork IDs
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type RankingStore struct {
	cache cache.Cache
	meta  MetaStoreInterface
}

// newRankingStore creates a new RankingStore instance
func newRankingStore(c cache.Cache, meta MetaStoreInterface) *RankingStore {
	return &RankingStore{
		cache: c,
		meta:  meta,
	}
}

// ListKeys returns every ranking key
func (s *RankingStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.cache.Keys(ctx, rankingPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking keys: %w", err)
	}
	return keys, nil
}

// GetArtworks returns the artwork IDs of a ranking in ascending score order
func (s *RankingStore) GetArtworks(ctx context.Context, artistID, artistName string) ([]string, error) {
	members, err := s.cache.ZRange(ctx, RankingKey(artistID, artistName))
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}
	if members == nil {
		return []string{}, nil
	}
	return members, nil
}

// Put drops the existing ranking and re-inserts artworkIDs scored 0..n-1
// The delete and the inserts are separate commands, so a concurrent reader may
// briefly see a partial ranking
func (s *RankingStore) Put(ctx context.Context, artistID, artistName string, artworkIDs []string) error {
	seen := make(map[string]struct{}, len(artworkIDs))
	for _, id := range artworkIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("artwork %s: %w", id, ErrDuplicateArtwork)
		}
		seen[id] = struct{}{}
	}

	// an empty ranking is no ranking: drop the key and its tag
	if len(artworkIDs) == 0 {
		return s.Delete(ctx, artistID, artistName)
	}

	key := RankingKey(artistID, artistName)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to clear ranking: %w", err)
	}
	for pos, id := range artworkIDs {
		if err := s.cache.ZAdd(ctx, key, float64(pos), id); err != nil {
			return fmt.Errorf("failed to add %s to ranking: %w", id, err)
		}
	}
	return s.meta.SetRankingPolicy(ctx, key, PolicyPosition)
}

// Add inserts or re-scores an artwork by its creation time
func (s *RankingStore) Add(ctx context.Context, artistID, artistName, artworkID string, createdAt time.Time) error {
	score := float64(createdAt.UnixMilli())
	if err := s.cache.ZAdd(ctx, RankingKey(artistID, artistName), score, artworkID); err != nil {
		return fmt.Errorf("failed to add %s to ranking: %w", artworkID, err)
	}
	return nil
}

// Delete removes a ranking and its policy tag
func (s *RankingStore) Delete(ctx context.Context, artistID, artistName string) error {
	key := RankingKey(artistID, artistName)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete ranking from cache: %w", err)
	}
	return s.meta.DeleteRankingPolicy(ctx, key)
}

// GetPolicy returns the scoring policy tag of a ranking, or "" if untagged
func (s *RankingStore) GetPolicy(ctx context.Context, artistID, artistName string) (ScoringPolicy, error) {
	return s.meta.GetRankingPolicy(ctx, RankingKey(artistID, artistName))
}

// SetPolicy tags a ranking with the scoring policy that produced it
func (s *RankingStore) SetPolicy(ctx context.Context, artistID, artistName string, policy ScoringPolicy) error {
	return s.meta.SetRankingPolicy(ctx, RankingKey(artistID, artistName), policy)
}
