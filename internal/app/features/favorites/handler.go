// internal/app/features/favorites/handler.go

// Package favorites lets a traveler bookmark destinations. Saving is
// idempotent; the list joins in a display reference for each destination.
package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler carries the dependencies shared by the favorites endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a favorites Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// destinationID extracts and parses the {id} URL parameter.
func destinationID(r *http.Request) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return oid, nil
}
