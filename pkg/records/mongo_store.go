package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/artvault/artvault/pkg/apperrors"
	"github.com/artvault/artvault/pkg/identifier"
	"github.com/artvault/artvault/pkg/logger"
)

const (
	entityArtist  = "artist"
	entityArtwork = "artwork"
)

// MongoStore implements Store on the Artist and Artwork collections.
//
// The two collections are updated with separate writes. CreateArtwork undoes
// its artwork insert when linking the artist fails; the delete paths do not
// roll back, so a failure between their writes can leave a dangling reference.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore wraps db. A nil db yields a store whose every call fails
// with apperrors.ErrStoreUnavailable.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

var _ Store = (*MongoStore)(nil)

func (s *MongoStore) collection(name string) (*mongo.Collection, error) {
	if s == nil || s.db == nil {
		return nil, apperrors.ErrStoreUnavailable
	}
	return s.db.Collection(name), nil
}

// idFilter builds the _id equality filter, rejecting malformed ids up front.
func idFilter(entity, id string) (bson.M, error) {
	if identifier.Classify(id) == identifier.Unrecognized {
		return nil, apperrors.InvalidIdentifier(entity, id)
	}
	return bson.M{"_id": ID(id)}, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, entity, id string) (*T, error) {
	filter, err := idFilter(entity, id)
	if err != nil {
		return nil, err
	}

	var doc T
	err = coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound(entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", entity, id, err)
	}
	return &doc, nil
}

func updateOne[T any](ctx context.Context, coll *mongo.Collection, entity, id string, set interface{}) (*T, error) {
	filter, err := idFilter(entity, id)
	if err != nil {
		return nil, err
	}

	var doc T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound(entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", entity, id, err)
	}
	return &doc, nil
}

// --- Artists ---

func (s *MongoStore) ListArtists(ctx context.Context) ([]Artist, error) {
	coll, err := s.collection(ArtistCollection)
	if err != nil {
		return nil, err
	}
	artists, err := findAll[Artist](ctx, coll, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

func (s *MongoStore) GetArtist(ctx context.Context, id string) (*Artist, error) {
	coll, err := s.collection(ArtistCollection)
	if err != nil {
		return nil, err
	}
	return findOne[Artist](ctx, coll, entityArtist, id)
}

func (s *MongoStore) CreateArtist(ctx context.Context, in ArtistInput) (*Artist, error) {
	coll, err := s.collection(ArtistCollection)
	if err != nil {
		return nil, err
	}

	artist := Artist{
		ID:       NewID(),
		Name:     in.Name,
		Artworks: []ID{},
	}
	if _, err := coll.InsertOne(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}
	return &artist, nil
}

func (s *MongoStore) UpdateArtist(ctx context.Context, id string, upd ArtistUpdate) (*Artist, error) {
	coll, err := s.collection(ArtistCollection)
	if err != nil {
		return nil, err
	}
	if upd.empty() {
		return findOne[Artist](ctx, coll, entityArtist, id)
	}
	return updateOne[Artist](ctx, coll, entityArtist, id, upd)
}

func (s *MongoStore) DeleteArtist(ctx context.Context, id string) error {
	artists, err := s.collection(ArtistCollection)
	if err != nil {
		return err
	}
	artworks, err := s.collection(ArtworkCollection)
	if err != nil {
		return err
	}

	filter, err := idFilter(entityArtist, id)
	if err != nil {
		return err
	}
	res, err := artists.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete artist %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(entityArtist, id)
	}

	_, err = artworks.UpdateMany(ctx,
		bson.M{"artistId": ID(id)},
		bson.M{"$unset": bson.M{"artistId": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear artist %s from its artworks: %w", id, err)
	}
	return nil
}

// --- Artworks ---

func (s *MongoStore) ListArtworks(ctx context.Context) ([]Artwork, error) {
	coll, err := s.collection(ArtworkCollection)
	if err != nil {
		return nil, err
	}
	artworks, err := findAll[Artwork](ctx, coll, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	return artworks, nil
}

func (s *MongoStore) GetArtwork(ctx context.Context, id string) (*Artwork, error) {
	coll, err := s.collection(ArtworkCollection)
	if err != nil {
		return nil, err
	}
	return findOne[Artwork](ctx, coll, entityArtwork, id)
}

func (s *MongoStore) ListArtworksByArtist(ctx context.Context, artistID string) ([]Artwork, error) {
	artist, err := s.GetArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if len(artist.Artworks) == 0 {
		return []Artwork{}, nil
	}

	coll, err := s.collection(ArtworkCollection)
	if err != nil {
		return nil, err
	}
	artworks, err := findAll[Artwork](ctx, coll, bson.M{"_id": bson.M{"$in": artist.Artworks}})
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks of artist %s: %w", artistID, err)
	}
	return artworks, nil
}

func (s *MongoStore) CreateArtwork(ctx context.Context, in ArtworkInput) (*Artwork, error) {
	artworks, err := s.collection(ArtworkCollection)
	if err != nil {
		return nil, err
	}
	artists, err := s.collection(ArtistCollection)
	if err != nil {
		return nil, err
	}

	artistID := ID(in.ArtistID)
	if !identifier.Valid(in.ArtistID) {
		artistID = NewID()
	}

	createdAt := in.CreationDate
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	artwork := Artwork{
		ID:        NewID(),
		Title:     in.Title,
		Medium:    in.Medium,
		Dimension: in.Dimension,
		Price:     in.Price,
		// BSON dates carry milliseconds; truncate so the returned value
		// matches what a later read returns
		CreationDate: createdAt.UTC().Truncate(time.Millisecond),
		ArtistID:     artistID,
	}
	if _, err := artworks.InsertOne(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}

	_, err = artists.UpdateOne(ctx,
		bson.M{"_id": artistID},
		bson.M{"$addToSet": bson.M{"artworks": artwork.ID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		linkErr := fmt.Errorf("failed to add artwork %s to artist %s: %w", artwork.ID, artistID, err)
		if _, undoErr := artworks.DeleteOne(ctx, bson.M{"_id": artwork.ID}); undoErr != nil {
			logger.Logger(ctx).WithError(undoErr).WithField("artwork", artwork.ID.String()).
				Error("failed to roll back artwork insert")
			return nil, errors.Join(linkErr, fmt.Errorf("failed to roll back artwork %s: %w", artwork.ID, undoErr))
		}
		return nil, linkErr
	}

	return &artwork, nil
}

func (s *MongoStore) UpdateArtwork(ctx context.Context, id string, upd ArtworkUpdate) (*Artwork, error) {
	coll, err := s.collection(ArtworkCollection)
	if err != nil {
		return nil, err
	}
	if upd.empty() {
		return findOne[Artwork](ctx, coll, entityArtwork, id)
	}
	if upd.CreationDate != nil {
		truncated := upd.CreationDate.UTC().Truncate(time.Millisecond)
		upd.CreationDate = &truncated
	}
	return updateOne[Artwork](ctx, coll, entityArtwork, id, upd)
}

func (s *MongoStore) DeleteArtwork(ctx context.Context, id string) error {
	artworks, err := s.collection(ArtworkCollection)
	if err != nil {
		return err
	}
	artists, err := s.collection(ArtistCollection)
	if err != nil {
		return err
	}

	artwork, err := findOne[Artwork](ctx, artworks, entityArtwork, id)
	if err != nil {
		return err
	}

	if _, err := artworks.DeleteOne(ctx, bson.M{"_id": artwork.ID}); err != nil {
		return fmt.Errorf("failed to delete artwork %s: %w", id, err)
	}

	// pull from every holder, not only artwork.ArtistID, so sets that drifted
	// from the back-reference are cleaned as well
	_, err = artists.UpdateMany(ctx,
		bson.M{"artworks": artwork.ID},
		bson.M{"$pull": bson.M{"artworks": artwork.ID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove artwork %s from its artist: %w", id, err)
	}
	return nil
}
