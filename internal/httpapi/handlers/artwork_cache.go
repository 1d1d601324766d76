package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/store"
)

// ArtworkDetailRequest is the body of a manual artwork cache write. Price
// accepts a JSON number or a numeric string.
type ArtworkDetailRequest struct {
	Title     string      `json:"title"`
	Medium    string      `json:"medium"`
	Dimension string      `json:"dimension"`
	Price     json.Number `json:"price"`
}

type ArtworkKeysResponse struct {
	Keys []string `json:"keys"`
}

// ListArtworkDetails returns the cached artwork keys, or the full details
// when called with ?details=true.
func (h *Handlers) ListArtworkDetails(c *gin.Context) {
	ctx := c.Request.Context()

	withDetails, _ := strconv.ParseBool(c.Query("details"))
	if withDetails {
		details, err := h.cache.Artwork.List(ctx)
		if err != nil {
			respondError(c, err, "failed to list cached artworks")
			return
		}
		c.JSON(http.StatusOK, details)
		return
	}

	keys, err := h.cache.Artwork.ListKeys(ctx)
	if err != nil {
		respondError(c, err, "failed to list cached artworks")
		return
	}
	c.JSON(http.StatusOK, ArtworkKeysResponse{Keys: keys})
}

func (h *Handlers) GetArtworkDetail(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.cache.Artwork.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to read cached artwork")
		return
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "artwork " + id + " is not cached"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PutArtworkDetail creates or overwrites a cached artwork. The durable store
// is not touched; the next sync overwrites the entry.
func (h *Handlers) PutArtworkDetail(c *gin.Context) {
	id := c.Param("id")

	var req ArtworkDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid artwork data")
		return
	}

	detail := store.ArtworkDetail{
		ID:        id,
		Title:     req.Title,
		Medium:    req.Medium,
		Dimension: req.Dimension,
		Price:     req.Price.String(),
	}
	if err := detail.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.cache.Artwork.Set(c.Request.Context(), id, detail); err != nil {
		respondError(c, err, "failed to write cached artwork")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handlers) DeleteArtworkDetail(c *gin.Context) {
	if err := h.cache.Artwork.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete cached artwork")
		return
	}
	c.Status(http.StatusNoContent)
}
