package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/artvault/artvault/pkg/cache"
)

const (
	fieldTitle     = "title"
	fieldMedium    = "medium"
	fieldDimension = "dimension"
	fieldPrice     = "price"
)

// ArtworkDetail is the flattened projection of an artwork kept in cache
// Key format: "artworkDetails:<artworkId>"
// Value: hash with fields title, medium, dimension, price
type ArtworkDetail struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Medium    string `json:"medium"`
	Dimension string `json:"dimension"`
	// Price is the decimal string form of the durable numeric price
	Price string `json:"price"`
}

// Validate checks the fields required for a manual cache write.
// Sync writes skip this so incomplete durable records are still mirrored.
func (d ArtworkDetail) Validate() error {
	var missing []string
	if d.Title == "" {
		missing = append(missing, fieldTitle)
	}
	if d.Medium == "" {
		missing = append(missing, fieldMedium)
	}
	if d.Dimension == "" {
		missing = append(missing, fieldDimension)
	}
	if len(missing) > 0 {
		return fmt.Errorf("artwork detail is missing %s", strings.Join(missing, ", "))
	}
	if _, err := strconv.ParseFloat(d.Price, 64); err != nil {
		return errors.New("artwork detail price must be numeric")
	}
	return nil
}

func (d ArtworkDetail) fields() map[string]string {
	return map[string]string{
		fieldTitle:     d.Title,
		fieldMedium:    d.Medium,
		fieldDimension: d.Dimension,
		fieldPrice:     d.Price,
	}
}

func detailFromFields(id string, fields map[string]string) ArtworkDetail {
	return ArtworkDetail{
		ID:        id,
		Title:     fields[fieldTitle],
		Medium:    fields[fieldMedium],
		Dimension: fields[fieldDimension],
		Price:     fields[fieldPrice],
	}
}

// ArtworkStore handles artwork detail cache operations with "artworkDetails:" prefix
// NOTE: This store does NOT handle locking - callers must ensure proper synchronization
type ArtworkStore struct {
	cache cache.Cache
}

// newArtworkStore creates a new ArtworkStore instance
func newArtworkStore(c cache.Cache) *ArtworkStore {
	return &ArtworkStore{
		cache: c,
	}
}

// ListKeys returns every cached artwork detail key
func (s *ArtworkStore) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := s.cache.Keys(ctx, artworkDetailsPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list artwork detail keys: %w", err)
	}
	return keys, nil
}

// List returns every cached artwork detail
// A key that disappears between listing and reading is skipped
func (s *ArtworkStore) List(ctx context.Context) ([]ArtworkDetail, error) {
	keys, err := s.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]ArtworkDetail, 0, len(keys))
	for _, key := range keys {
		fields, err := s.cache.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if len(fields) == 0 {
			continue
		}
		details = append(details, detailFromFields(strings.TrimPrefix(key, artworkDetailsPrefix), fields))
	}
	return details, nil
}

// Get returns the cached detail for an artwork, or nil if absent
func (s *ArtworkStore) Get(ctx context.Context, artworkID string) (*ArtworkDetail, error) {
	fields, err := s.cache.HGetAll(ctx, ArtworkDetailsKey(artworkID))
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork detail: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	detail := detailFromFields(artworkID, fields)
	return &detail, nil
}

// Set creates or overwrites the cached detail for an artwork
func (s *ArtworkStore) Set(ctx context.Context, artworkID string, detail ArtworkDetail) error {
	if err := s.cache.HSet(ctx, ArtworkDetailsKey(artworkID), detail.fields()); err != nil {
		return fmt.Errorf("failed to set artwork detail in cache: %w", err)
	}
	return nil
}

// Delete removes the cached detail for an artwork
func (s *ArtworkStore) Delete(ctx context.Context, artworkID string) error {
	if err := s.cache.Delete(ctx, ArtworkDetailsKey(artworkID)); err != nil {
		return fmt.Errorf("failed to delete artwork detail from cache: %w", err)
	}
	return nil
}
