// internal/app/features/account/handler.go

// Package account serves registration, password sign-in, sign-out, and the
// current-user endpoint. Google sign-in lives in the authgoogle package.
package account

import (
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// bcryptCost is the work factor for password hashes.
const bcryptCost = 12

// Handler carries the dependencies shared by the account endpoints.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Sessions *auth.SessionManager
}

// NewHandler constructs an account Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, sm *auth.SessionManager) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Sessions: sm,
	}
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
