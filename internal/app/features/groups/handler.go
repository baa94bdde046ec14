// internal/app/features/groups/handler.go
package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/authz"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the group collaboration
// feature. Every endpoint in this package hangs off it.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a groups Handler. Called from bootstrap
// BuildHandler once the database and logger exist.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// groupID extracts and parses the {id} URL parameter. A malformed ID maps
// to not-found, matching the behavior for IDs that parse but match nothing.
func groupID(r *http.Request) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.ErrNotFound
	}
	return oid, nil
}

// validationError converts the first inputval failure into an error the
// webjson envelope can map to 422.
func validationError(res *inputval.Result) error {
	if len(res.Errors) == 0 {
		return nil
	}
	first := res.Errors[0]
	return apperr.Validation(first.Field, first.Message)
}

// currentUserID returns the signed-in user's ObjectID. RequireSignedIn
// runs before these handlers, so a missing or malformed identity is a
// server-side inconsistency rather than a client error.
func currentUserID(r *http.Request) (primitive.ObjectID, bool) {
	id := authz.UserID(r)
	return id, id != primitive.NilObjectID
}
