// internal/domain/models/favorite.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite marks a destination a user has saved. Exactly one document per
// (user_id, destination_id); the unique index makes the PUT idempotent.
type Favorite struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	DestinationID primitive.ObjectID `bson:"destination_id" json:"destination_id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
