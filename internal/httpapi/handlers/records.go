package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artvault/artvault/pkg/records"
)

type ArtistRequest struct {
	Name string `json:"name" binding:"required"`
}

type ArtistUpdateRequest struct {
	Name *string `json:"name"`
}

type ArtworkRequest struct {
	Title        string     `json:"title" binding:"required"`
	Medium       string     `json:"medium"`
	Dimension    string     `json:"dimension"`
	Price        float64    `json:"price"`
	CreationDate *time.Time `json:"creationDate"`
	ArtistID     string     `json:"artistId"`
}

type ArtworkUpdateRequest struct {
	Title        *string    `json:"title"`
	Medium       *string    `json:"medium"`
	Dimension    *string    `json:"dimension"`
	Price        *float64   `json:"price"`
	CreationDate *time.Time `json:"creationDate"`
}

// --- Artists ---

func (h *Handlers) ListArtists(c *gin.Context) {
	artists, err := h.records.ListArtists(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list artists")
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (h *Handlers) GetArtist(c *gin.Context) {
	artist, err := h.records.GetArtist(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get artist")
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (h *Handlers) CreateArtist(c *gin.Context) {
	var req ArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(c, "name is required")
		return
	}

	artist, err := h.records.CreateArtist(c.Request.Context(), records.ArtistInput{Name: req.Name})
	if err != nil {
		respondError(c, err, "failed to create artist")
		return
	}
	c.JSON(http.StatusCreated, artist)
}

func (h *Handlers) UpdateArtist(c *gin.Context) {
	var req ArtistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid artist data")
		return
	}

	artist, err := h.records.UpdateArtist(c.Request.Context(), c.Param("id"), records.ArtistUpdate{Name: req.Name})
	if err != nil {
		respondError(c, err, "failed to update artist")
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (h *Handlers) DeleteArtist(c *gin.Context) {
	if err := h.records.DeleteArtist(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete artist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) ListArtistArtworks(c *gin.Context) {
	artworks, err := h.records.ListArtworksByArtist(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to list artworks of artist")
		return
	}
	c.JSON(http.StatusOK, artworks)
}

// --- Artworks ---

func (h *Handlers) ListArtworks(c *gin.Context) {
	artworks, err := h.records.ListArtworks(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list artworks")
		return
	}
	c.JSON(http.StatusOK, artworks)
}

func (h *Handlers) GetArtwork(c *gin.Context) {
	artwork, err := h.records.GetArtwork(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get artwork")
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (h *Handlers) CreateArtwork(c *gin.Context) {
	var req ArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid artwork data")
		return
	}
	if req.Price < 0 {
		badRequest(c, "price must not be negative")
		return
	}

	in := records.ArtworkInput{
		Title:     req.Title,
		Medium:    req.Medium,
		Dimension: req.Dimension,
		Price:     req.Price,
		ArtistID:  req.ArtistID,
	}
	if req.CreationDate != nil {
		in.CreationDate = *req.CreationDate
	}

	artwork, err := h.records.CreateArtwork(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "failed to create artwork")
		return
	}
	c.JSON(http.StatusCreated, artwork)
}

func (h *Handlers) UpdateArtwork(c *gin.Context) {
	var req ArtworkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid artwork data")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		badRequest(c, "price must not be negative")
		return
	}

	artwork, err := h.records.UpdateArtwork(c.Request.Context(), c.Param("id"), records.ArtworkUpdate{
		Title:        req.Title,
		Medium:       req.Medium,
		Dimension:    req.Dimension,
		Price:        req.Price,
		CreationDate: req.CreationDate,
	})
	if err != nil {
		respondError(c, err, "failed to update artwork")
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (h *Handlers) DeleteArtwork(c *gin.Context) {
	if err := h.records.DeleteArtwork(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete artwork")
		return
	}
	c.Status(http.StatusNoContent)
}
