package cachesync

import (
	"context"

	"github.com/artvault/artvault/pkg/apperrors"
	"github.com/artvault/artvault/pkg/logger"
	"github.com/artvault/artvault/pkg/records"
	"github.com/artvault/artvault/pkg/store"
)

// DetailFromArtwork projects a durable artwork onto its cached detail.
func DetailFromArtwork(a records.Artwork) store.ArtworkDetail {
	return store.ArtworkDetail{
		ID:        a.ID.String(),
		Title:     a.Title,
		Medium:    a.Medium,
		Dimension: a.Dimension,
		Price:     store.FormatPrice(a.Price),
	}
}

// SyncArtworkDetails writes an "artworkDetails:<id>" hash for every artwork.
// Running it twice over unchanged records leaves identical hashes.
func (e *Engine) SyncArtworkDetails(ctx context.Context) (*Report, error) {
	return e.procedure(ctx, ProcedureArtworkDetails, func(ctx context.Context, report *Report) error {
		artworks, err := e.reader.ListArtworks(ctx)
		if err != nil {
			return apperrors.NewSyncError(ProcedureArtworkDetails, "", err)
		}

		for _, artwork := range artworks {
			if err := ctx.Err(); err != nil {
				return apperrors.NewSyncError(ProcedureArtworkDetails, "", err)
			}

			id := artwork.ID.String()
			key := store.ArtworkDetailsKey(id)
			if err := e.cache.Artwork.Set(ctx, id, DetailFromArtwork(artwork)); err != nil {
				syncErr := apperrors.NewSyncError(ProcedureArtworkDetails, id, err)
				if e.mode != ModePartial {
					return syncErr
				}
				logger.Logger(ctx).WithField("artwork", id).WithError(err).Warn("skipping artwork detail")
				report.failed(id, key, syncErr)
				continue
			}
			report.synced(id, key)
		}
		return nil
	})
}
