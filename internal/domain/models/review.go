// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a traveler's review of a destination.
type Review struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	DestinationID primitive.ObjectID `bson:"destination_id" json:"destination_id"`
	AuthorID      primitive.ObjectID `bson:"author_id" json:"author_id"`
	Rating        int                `bson:"rating" json:"rating"` // 1–5
	Body          string             `bson:"body" json:"body"`
	Photos        []string           `bson:"photos,omitempty" json:"photos,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
