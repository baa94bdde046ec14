// internal/app/store/destinations/destinationstore.go
package destinationstore

import (
	"context"
	"errors"
	"time"

	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateDestination = errors.New("a destination with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("destinations")}
}

func (s *Store) Create(ctx context.Context, d models.Destination) (models.Destination, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.NameCI = text.Fold(d.Name)
	d.CountryCI = text.Fold(d.Country)
	if d.Status == "" {
		d.Status = models.DestinationPublished
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Destination{}, ErrDuplicateDestination
		}
		return models.Destination{}, err
	}
	return d, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Destination, error) {
	var d models.Destination
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Destination{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Destination{}, err
	}
	return d, nil
}

// UpdateContent replaces the editable fields of a destination. The guide is
// expected to be sanitized HTML; the caller handles that.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, summary, guide string, photos []string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"summary":    summary,
		"guide":      guide,
		"photos":     photos,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Find returns destinations matching the given filter with optional find
// options. The caller builds the filter and options (keyset pagination,
// sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Destination, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ds []models.Destination
	if err := cur.All(ctx, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Count returns the number of destinations matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
