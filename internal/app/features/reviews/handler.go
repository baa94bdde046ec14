// internal/app/features/reviews/handler.go

// Package reviews serves destination reviews: one per traveler per
// destination, rating 1 through 5.
package reviews

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler carries the dependencies shared by the review endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a reviews Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// urlObjectID extracts and parses a named ObjectID URL parameter.
func urlObjectID(r *http.Request, key string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, key))
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
