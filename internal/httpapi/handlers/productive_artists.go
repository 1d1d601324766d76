package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/store"
)

type ProductiveArtist struct {
	Key        string `json:"key"`
	ArtistID   string `json:"artistId"`
	ArtistName string `json:"artistName"`
}

type RankingRequest struct {
	ArtworkIDs []string `json:"artworkIds" binding:"required"`
}

type RankingResponse struct {
	ArtistID   string              `json:"artistId"`
	ArtistName string              `json:"artistName"`
	Policy     store.ScoringPolicy `json:"policy,omitempty"`
	ArtworkIDs []string            `json:"artworkIds"`
}

func (h *Handlers) ListProductiveArtists(c *gin.Context) {
	keys, err := h.cache.Ranking.ListKeys(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list productive artists")
		return
	}

	artists := make([]ProductiveArtist, 0, len(keys))
	for _, key := range keys {
		id, name, ok := store.ParseRankingKey(key)
		if !ok {
			continue
		}
		artists = append(artists, ProductiveArtist{Key: key, ArtistID: id, ArtistName: name})
	}
	c.JSON(http.StatusOK, artists)
}

// GetProductiveArtist returns the ranked artwork ids, oldest first for a
// synced ranking. An unknown artist yields an empty list.
func (h *Handlers) GetProductiveArtist(c *gin.Context) {
	ctx := c.Request.Context()
	artistID, artistName := c.Param("artistId"), c.Param("artistName")

	ids, err := h.cache.Ranking.GetArtworks(ctx, artistID, artistName)
	if err != nil {
		respondError(c, err, "failed to read ranking")
		return
	}
	policy, err := h.cache.Ranking.GetPolicy(ctx, artistID, artistName)
	if err != nil {
		respondError(c, err, "failed to read ranking policy")
		return
	}

	c.JSON(http.StatusOK, RankingResponse{
		ArtistID:   artistID,
		ArtistName: artistName,
		Policy:     policy,
		ArtworkIDs: ids,
	})
}

// PutProductiveArtist replaces the ranking with the given order. Use
// DeleteProductiveArtist to clear a ranking.
func (h *Handlers) PutProductiveArtist(c *gin.Context) {
	ctx := c.Request.Context()
	artistID, artistName := c.Param("artistId"), c.Param("artistName")

	var req RankingRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ArtworkIDs) == 0 {
		badRequest(c, "artworkIds must list at least one artwork")
		return
	}
	for _, id := range req.ArtworkIDs {
		if id == "" {
			badRequest(c, "artworkIds must not contain empty ids")
			return
		}
	}

	if err := h.cache.Ranking.Put(ctx, artistID, artistName, req.ArtworkIDs); err != nil {
		if errors.Is(err, store.ErrDuplicateArtwork) {
			badRequest(c, err.Error())
			return
		}
		respondError(c, err, "failed to write ranking")
		return
	}

	c.JSON(http.StatusOK, RankingResponse{
		ArtistID:   artistID,
		ArtistName: artistName,
		Policy:     store.PolicyPosition,
		ArtworkIDs: req.ArtworkIDs,
	})
}

func (h *Handlers) DeleteProductiveArtist(c *gin.Context) {
	if err := h.cache.Ranking.Delete(c.Request.Context(), c.Param("artistId"), c.Param("artistName")); err != nil {
		respondError(c, err, "failed to delete ranking")
		return
	}
	c.Status(http.StatusNoContent)
}
