// internal/app/features/account/me.go
package account

import (
	"net/http"

	userstore "github.com/voyagehq/voyagehub/internal/app/store/users"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/authz"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100" label:"Display name"`
}

// ServeMe handles GET /account/me: the signed-in user's profile, read fresh
// from the database rather than the session cache.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "current user")
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, uid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	webjson.Write(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdateProfile handles PUT /account/me. Only the display name is
// editable; email is fixed at registration.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid := authz.UserID(r)
	if uid == primitive.NilObjectID {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	var req updateProfileRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.DisplayName = htmlsanitize.Plain(normalize.Name(req.DisplayName))
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update profile")
	defer cancel()

	store := userstore.New(h.DB)
	if err := store.UpdateDisplayName(ctx, uid, req.DisplayName); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	u, err := store.GetByID(ctx, uid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	webjson.Write(w, http.StatusOK, toUserResponse(u))
}
