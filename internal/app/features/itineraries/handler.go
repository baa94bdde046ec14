// internal/app/features/itineraries/handler.go

// Package itineraries serves user-owned trip plans. Owners have full
// control; everyone else sees only plans marked public.
package itineraries

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler carries the dependencies shared by the itinerary endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs an itineraries Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// itineraryID extracts and parses the {id} URL parameter.
func itineraryID(r *http.Request) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return oid, nil
}

func validationError(res *inputval.Result) error {
	if len(res.Errors) == 0 {
		return nil
	}
	first := res.Errors[0]
	return apperr.Validation(first.Field, first.Message)
}
