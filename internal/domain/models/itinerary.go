// internal/domain/models/itinerary.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Itinerary is a user-owned trip plan. Days are embedded in trip order.
type Itinerary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	OwnerID  primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Title    string             `bson:"title" json:"title"`
	Notes    string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsPublic bool               `bson:"is_public" json:"is_public"`
	Days     []ItineraryDay     `bson:"days" json:"days"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ItineraryDay is one day of an itinerary, referencing a destination by ID.
type ItineraryDay struct {
	DayNumber     int                `bson:"day_number" json:"day_number"`
	DestinationID primitive.ObjectID `bson:"destination_id" json:"destination_id"`
	Activities    string             `bson:"activities,omitempty" json:"activities,omitempty"`
}
