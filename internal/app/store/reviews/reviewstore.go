// internal/app/store/reviews/reviewstore.go
package reviewstore

import (
	"context"
	"errors"
	"time"

	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
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

// ErrAlreadyReviewed is returned when the author already has a review for
// the destination. Enforced by the unique index.
var ErrAlreadyReviewed = errors.New("you have already reviewed this destination")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reviews")}
}

func (s *Store) Create(ctx context.Context, r models.Review) (models.Review, error) {
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Review{}, ErrAlreadyReviewed
		}
		return models.Review{}, err
	}
	return r, nil
}

// Delete removes a review. Only the author may delete their own review.
func (s *Store) Delete(ctx context.Context, id, authorID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "author_id": authorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		return apperr.ErrForbidden
	}
	return nil
}

// DeleteAny removes a review regardless of author. For moderation.
func (s *Store) DeleteAny(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListByDestination returns reviews for a destination, newest first.
func (s *Store) ListByDestination(ctx context.Context, destinationID primitive.ObjectID, page, limit int) ([]models.Review, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, bson.M{"destination_id": destinationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rs := []models.Review{}
	if err := cur.All(ctx, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// AverageRating computes the mean rating and review count for a destination.
func (s *Store) AverageRating(ctx context.Context, destinationID primitive.ObjectID) (avg float64, count int64, err error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"destination_id": destinationID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var out []struct {
		Avg   float64 `bson:"avg"`
		Count int64   `bson:"count"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, 0, err
	}
	if len(out) == 0 {
		return 0, 0, nil
	}
	return out[0].Avg, out[0].Count, nil
}
