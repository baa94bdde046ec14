// internal/app/store/itineraries/itinerarystore.go
package itinerarystore

import (
	"context"
	"errors"
	"time"

	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("itineraries")}
}

func (s *Store) Create(ctx context.Context, it models.Itinerary) (models.Itinerary, error) {
	now := time.Now().UTC()
	it.ID = primitive.NewObjectID()
	if it.Days == nil {
		it.Days = []models.ItineraryDay{}
	}
	it.CreatedAt = now
	it.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, it); err != nil {
		return models.Itinerary{}, err
	}
	return it, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Itinerary, error) {
	var it models.Itinerary
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&it)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Itinerary{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Itinerary{}, err
	}
	return it, nil
}

// Update replaces the editable fields of an itinerary. Only the owner may
// update; the filter enforces it and non-owners see not-found semantics
// fall back to forbidden via classification.
func (s *Store) Update(ctx context.Context, id, ownerID primitive.ObjectID, title, notes string, isPublic bool, days []models.ItineraryDay) error {
	if days == nil {
		days = []models.ItineraryDay{}
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{
			"title":      title,
			"notes":      notes,
			"is_public":  isPublic,
			"days":       days,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyOwnerFailure(ctx, id)
	}
	return nil
}

// Delete removes an itinerary. Only the owner may delete.
func (s *Store) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.classifyOwnerFailure(ctx, id)
	}
	return nil
}

func (s *Store) classifyOwnerFailure(ctx context.Context, id primitive.ObjectID) error {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return err
	}
	return apperr.ErrForbidden
}

// ListByOwner returns the owner's itineraries, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Itinerary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	its := []models.Itinerary{}
	if err := cur.All(ctx, &its); err != nil {
		return nil, err
	}
	return its, nil
}

// ListPublic returns public itineraries, newest first.
func (s *Store) ListPublic(ctx context.Context, page, limit int) ([]models.Itinerary, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, bson.M{"is_public": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	its := []models.Itinerary{}
	if err := cur.All(ctx, &its); err != nil {
		return nil, err
	}
	return its, nil
}
