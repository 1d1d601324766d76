package cachesync

import (
	"context"
	"errors"
	"fmt"

	"github.com/artvault/artvault/pkg/apperrors"
	"github.com/artvault/artvault/pkg/logger"
	"github.com/artvault/artvault/pkg/records"
	"github.com/artvault/artvault/pkg/store"
)

var errMissingCreationDate = errors.New("artwork has no creation date")

// IsProductive reports whether artist owns more artworks than the threshold.
func (e *Engine) IsProductive(artist records.Artist) bool {
	return len(artist.Artworks) > e.threshold
}

// SyncProductiveArtists adds every artwork of every productive artist to the
// artist's ranking, scored by creation time. Members already in a ranking are
// re-scored, never duplicated; members no longer owned by the artist are left
// in place. A ranking last written with position scores is rebuilt from
// scratch so the two scoring policies never mix within one key.
func (e *Engine) SyncProductiveArtists(ctx context.Context) (*Report, error) {
	return e.procedure(ctx, ProcedureProductiveArtists, func(ctx context.Context, report *Report) error {
		artists, err := e.reader.ListArtists(ctx)
		if err != nil {
			return apperrors.NewSyncError(ProcedureProductiveArtists, "", err)
		}

		for _, artist := range artists {
			if err := ctx.Err(); err != nil {
				return apperrors.NewSyncError(ProcedureProductiveArtists, "", err)
			}

			id := artist.ID.String()
			if !e.IsProductive(artist) {
				report.skipped(id)
				continue
			}

			key := store.RankingKey(id, artist.Name)
			if err := e.syncRanking(ctx, artist); err != nil {
				syncErr := apperrors.NewSyncError(ProcedureProductiveArtists, id, err)
				if e.mode != ModePartial {
					return syncErr
				}
				logger.Logger(ctx).WithField("artist", id).WithError(err).Warn("skipping artist ranking")
				report.failed(id, key, syncErr)
				continue
			}
			report.synced(id, key)
		}
		return nil
	})
}

// syncRanking loads every artwork before touching the ranking, so a dangling
// or undated artwork leaves the existing ranking as it was.
func (e *Engine) syncRanking(ctx context.Context, artist records.Artist) error {
	id := artist.ID.String()

	policy, err := e.cache.Ranking.GetPolicy(ctx, id, artist.Name)
	if err != nil {
		return err
	}

	artworks := make([]*records.Artwork, 0, len(artist.Artworks))
	for _, artworkID := range artist.Artworks {
		artwork, err := e.reader.GetArtwork(ctx, artworkID.String())
		if err != nil {
			return fmt.Errorf("failed to load artwork %s: %w", artworkID, err)
		}
		if artwork.CreationDate.IsZero() {
			return fmt.Errorf("artwork %s: %w", artworkID, errMissingCreationDate)
		}
		artworks = append(artworks, artwork)
	}

	if policy == store.PolicyPosition {
		if err := e.cache.Ranking.Delete(ctx, id, artist.Name); err != nil {
			return err
		}
	}
	for i, artwork := range artworks {
		if err := e.cache.Ranking.Add(ctx, id, artist.Name, artist.Artworks[i].String(), artwork.CreationDate); err != nil {
			return err
		}
	}

	return e.cache.Ranking.SetPolicy(ctx, id, artist.Name, store.PolicyTimestamp)
}
