// internal/app/store/favorites/favoritestore.go
package favoritestore

import (
	"context"
	"time"

	"github.com/voyagehq/voyagehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("favorites")}
}

// Add marks a destination as a favorite. Adding twice is a no-op; the
// unique index absorbs the race.
func (s *Store) Add(ctx context.Context, userID, destinationID primitive.ObjectID) error {
	f := models.Favorite{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		DestinationID: destinationID,
		CreatedAt:     time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, f)
	if err != nil && !wafflemongo.IsDup(err) {
		return err
	}
	return nil
}

// Remove unmarks a favorite. Removing a non-favorite is a no-op.
func (s *Store) Remove(ctx context.Context, userID, destinationID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "destination_id": destinationID})
	return err
}

// IsFavorite reports whether the user has favorited the destination.
func (s *Store) IsFavorite(ctx context.Context, userID, destinationID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "destination_id": destinationID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's favorites, most recent first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	fs := []models.Favorite{}
	if err := cur.All(ctx, &fs); err != nil {
		return nil, err
	}
	return fs, nil
}
