package store

import (
	"context"
	"time"
)

// ArtworkStoreInterface defines the cache operations on flattened artwork details
type ArtworkStoreInterface interface {
	// ListKeys returns every "artworkDetails:*" key
	ListKeys(ctx context.Context) ([]string, error)

	// List returns every cached artwork detail with its ID taken from the key
	List(ctx context.Context) ([]ArtworkDetail, error)

	// Get returns the cached detail for an artwork
	// Returns nil, nil if the artwork is not in cache
	Get(ctx context.Context, artworkID string) (*ArtworkDetail, error)

	// Set creates or overwrites the cached detail for an artwork
	Set(ctx context.Context, artworkID string, detail ArtworkDetail) error

	// Delete removes the cached detail; deleting an absent artwork is not an error
	Delete(ctx context.Context, artworkID string) error
}

// RankingStoreInterface defines the cache operations on productive artist rankings
type RankingStoreInterface interface {
	// ListKeys returns every "productiveArtistArtworks:*" key
	ListKeys(ctx context.Context) ([]string, error)

	// GetArtworks returns the ranked artwork IDs in ascending score order
	// Returns an empty slice if the ranking does not exist
	GetArtworks(ctx context.Context, artistID, artistName string) ([]string, error)

	// Put replaces the ranking with the given sequence, scoring each ID by its position
	Put(ctx context.Context, artistID, artistName string, artworkIDs []string) error

	// Add inserts an artwork scored by its creation time in unix milliseconds
	Add(ctx context.Context, artistID, artistName, artworkID string, createdAt time.Time) error

	// Delete removes the ranking; deleting an absent ranking is not an error
	Delete(ctx context.Context, artistID, artistName string) error

	// GetPolicy returns the scoring policy of the last writer of a ranking
	GetPolicy(ctx context.Context, artistID, artistName string) (ScoringPolicy, error)

	// SetPolicy records the scoring policy used for a ranking
	SetPolicy(ctx context.Context, artistID, artistName string, policy ScoringPolicy) error
}

// MetaStoreInterface defines operations for metadata cache operations
type MetaStoreInterface interface {
	// GetLastSync returns when a sync procedure last completed
	// The boolean is false if the procedure never completed
	GetLastSync(ctx context.Context, procedure string) (time.Time, bool, error)

	// SetLastSync records the completion time of a sync procedure
	SetLastSync(ctx context.Context, procedure string, at time.Time) error

	// GetRankingPolicy returns the policy tag for a ranking key, or "" if untagged
	GetRankingPolicy(ctx context.Context, rankingKey string) (ScoringPolicy, error)

	// SetRankingPolicy tags a ranking key with a scoring policy
	SetRankingPolicy(ctx context.Context, rankingKey string, policy ScoringPolicy) error

	// DeleteRankingPolicy removes the policy tag of a ranking key
	DeleteRankingPolicy(ctx context.Context, rankingKey string) error
}
