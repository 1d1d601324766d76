// Package records is the durable store for artists and artworks. It owns the
// artist <-> artwork references; the cache is derived from it.
package records

import (
	"context"
	"time"
)

const (
	ArtistCollection  = "Artist"
	ArtworkCollection = "Artwork"
)

// Artist is a document of the Artist collection.
type Artist struct {
	ID   ID     `bson:"_id,omitempty" json:"id"`
	Name string `bson:"name" json:"name"`
	// Artworks is a membership set; order carries no meaning.
	Artworks []ID `bson:"artworks" json:"artworks"`
}

// Artwork is a document of the Artwork collection.
type Artwork struct {
	ID           ID        `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Medium       string    `bson:"medium" json:"medium"`
	Dimension    string    `bson:"dimension" json:"dimension"`
	Price        float64   `bson:"price" json:"price"`
	CreationDate time.Time `bson:"creationDate" json:"creationDate"`
	// ArtistID references the artist whose Artworks set holds this artwork.
	ArtistID ID `bson:"artistId,omitempty" json:"artistId,omitempty"`
}

type ArtistInput struct {
	Name string
}

// ArtistUpdate lists the fields to $set; nil fields are left untouched.
type ArtistUpdate struct {
	Name *string `bson:"name,omitempty"`
}

func (u ArtistUpdate) empty() bool {
	return u.Name == nil
}

type ArtworkInput struct {
	Title     string
	Medium    string
	Dimension string
	Price     float64
	// CreationDate defaults to the insert time when zero.
	CreationDate time.Time
	// ArtistID names the owning artist. An empty or malformed value creates
	// a new artist for the artwork.
	ArtistID string
}

// ArtworkUpdate lists the fields to $set; nil fields are left untouched.
// The owning artist cannot be changed through an update.
type ArtworkUpdate struct {
	Title        *string    `bson:"title,omitempty"`
	Medium       *string    `bson:"medium,omitempty"`
	Dimension    *string    `bson:"dimension,omitempty"`
	Price        *float64   `bson:"price,omitempty"`
	CreationDate *time.Time `bson:"creationDate,omitempty"`
}

func (u ArtworkUpdate) empty() bool {
	return u.Title == nil && u.Medium == nil && u.Dimension == nil && u.Price == nil && u.CreationDate == nil
}

// ArtistStore defines the durable operations on artists.
// Lookups by id fail with apperrors.ErrInvalidIdentifier before touching the
// database when the id is neither a legacy UUID nor a durable id.
type ArtistStore interface {
	ListArtists(ctx context.Context) ([]Artist, error)
	GetArtist(ctx context.Context, id string) (*Artist, error)
	CreateArtist(ctx context.Context, in ArtistInput) (*Artist, error)
	UpdateArtist(ctx context.Context, id string, upd ArtistUpdate) (*Artist, error)
	// DeleteArtist removes the artist and clears the back-reference on its artworks.
	DeleteArtist(ctx context.Context, id string) error
}

// ArtworkStore defines the durable operations on artworks.
type ArtworkStore interface {
	ListArtworks(ctx context.Context) ([]Artwork, error)
	GetArtwork(ctx context.Context, id string) (*Artwork, error)
	// ListArtworksByArtist returns the artworks in the artist's Artworks set.
	ListArtworksByArtist(ctx context.Context, artistID string) ([]Artwork, error)
	// CreateArtwork inserts the artwork, then adds it to the owning artist,
	// creating that artist if it does not exist.
	CreateArtwork(ctx context.Context, in ArtworkInput) (*Artwork, error)
	UpdateArtwork(ctx context.Context, id string, upd ArtworkUpdate) (*Artwork, error)
	// DeleteArtwork removes the artwork and pulls it from every artist set.
	DeleteArtwork(ctx context.Context, id string) error
}

// Store is the full durable store.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/artvault/artvault/pkg/records Store
type Store interface {
	ArtistStore
	ArtworkStore
}
