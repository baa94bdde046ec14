// internal/domain/models/destination.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Destination statuses.
const (
	DestinationPublished = "published"
	DestinationDraft     = "draft"
)

// Destination is a curated destination guide. Includes case/diacritic-
// insensitive fields for search/sort.
type Destination struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"-"` // ← always stored
	Country   string             `bson:"country" json:"country"`
	CountryCI string             `bson:"country_ci" json:"-"` // ← always stored
	Summary   string             `bson:"summary" json:"summary"`
	Guide     string             `bson:"guide" json:"guide"` // sanitized long-form content
	Photos    []string           `bson:"photos,omitempty" json:"photos,omitempty"`
	Status    string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DestinationRef is the minimal display projection other features embed
// (itineraries, reviews, favorites) after an existence check.
type DestinationRef struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Country string             `bson:"country" json:"country"`
}
