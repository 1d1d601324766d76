package store

import (
	"github.com/artvault/artvault/pkg/cache"
)

// Store is the facade route handlers and the sync engine use to reach cached
// artwork data without knowing the key layout.
// NOTE: This store does NOT handle locking - concurrent writers to the same key
// get last-writer-wins semantics
type Store struct {
	Artwork ArtworkStoreInterface
	Ranking RankingStoreInterface
	Meta    MetaStoreInterface
}

// New creates a new Store instance with all sub-stores initialized
func New(c cache.Cache) *Store {
	meta := newMetaStore(c)
	return &Store{
		Artwork: newArtworkStore(c),
		Ranking: newRankingStore(c, meta),
		Meta:    meta,
	}
}

// Compile-time interface compliance checks
var (
	_ ArtworkStoreInterface = (*ArtworkStore)(nil)
	_ RankingStoreInterface = (*RankingStore)(nil)
	_ MetaStoreInterface    = (*MetaStore)(nil)
)
