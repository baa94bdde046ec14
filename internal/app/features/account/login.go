// internal/app/features/account/login.go
package account

import (
	"errors"
	"net/http"

	userstore "github.com/voyagehq/voyagehub/internal/app/store/users"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// errBadCredentials is what every sign-in failure surfaces as, so a caller
// cannot distinguish an unknown email from a wrong password.
var errBadCredentials = apperr.Validation("email", "Email or password is incorrect.")

func sessionUserFor(u *models.User) auth.SessionUser {
	return auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.DisplayName,
		Email: u.Email,
		Role:  u.Role,
	}
}

// HandleLogin handles POST /account/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Email = normalize.Email(req.Email)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "login")
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			webjson.WriteError(w, h.Log, errBadCredentials)
			return
		}
		webjson.WriteError(w, h.Log, err)
		return
	}

	// Google-only accounts have no password to check.
	if u.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		webjson.WriteError(w, h.Log, errBadCredentials)
		return
	}

	if u.Status != models.StatusActive {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	if err := h.Sessions.SignIn(w, r, sessionUserFor(u)); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("auth_method", models.AuthMethodPassword))

	webjson.Write(w, http.StatusOK, toUserResponse(u))
}
