package records

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/artvault/artvault/pkg/logger"
)

// Fixtures is a YAML seed file: artists with the artworks they own.
type Fixtures struct {
	Artists []ArtistFixture `yaml:"artists"`
}

type ArtistFixture struct {
	Name     string           `yaml:"name"`
	Artworks []ArtworkFixture `yaml:"artworks"`
}

type ArtworkFixture struct {
	Title     string  `yaml:"title"`
	Medium    string  `yaml:"medium"`
	Dimension string  `yaml:"dimension"`
	Price     float64 `yaml:"price"`
	// CreationDate accepts RFC 3339 or a bare date (2006-01-02).
	CreationDate string `yaml:"creationDate"`
}

var fixtureDateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateOnly}

func parseFixtureDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range fixtureDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported creationDate %q", value)
}

// LoadFixtures reads and validates a fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes fixtures from YAML.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for i, artist := range f.Artists {
		if artist.Name == "" {
			return nil, fmt.Errorf("fixture artist #%d has no name", i)
		}
		for _, artwork := range artist.Artworks {
			if _, err := parseFixtureDate(artwork.CreationDate); err != nil {
				return nil, fmt.Errorf("fixture artwork %q of %s: %w", artwork.Title, artist.Name, err)
			}
		}
	}
	return &f, nil
}

// Seed writes the fixtures through store. It is not idempotent; every call
// creates new artists.
func Seed(ctx context.Context, store Store, f *Fixtures) error {
	log := logger.Logger(ctx)
	var artworkCount int

	for _, fa := range f.Artists {
		artist, err := store.CreateArtist(ctx, ArtistInput{Name: fa.Name})
		if err != nil {
			return fmt.Errorf("failed to seed artist %s: %w", fa.Name, err)
		}

		for _, fw := range fa.Artworks {
			createdAt, err := parseFixtureDate(fw.CreationDate)
			if err != nil {
				return err
			}
			_, err = store.CreateArtwork(ctx, ArtworkInput{
				Title:        fw.Title,
				Medium:       fw.Medium,
				Dimension:    fw.Dimension,
				Price:        fw.Price,
				CreationDate: createdAt,
				ArtistID:     artist.ID.String(),
			})
			if err != nil {
				return fmt.Errorf("failed to seed artwork %q of %s: %w", fw.Title, fa.Name, err)
			}
			artworkCount++
		}
	}

	log.WithField("artists", len(f.Artists)).WithField("artworks", artworkCount).Info("seeded fixtures")
	return nil
}
