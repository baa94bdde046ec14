// internal/app/features/groups/membership.go
package groups

import (
	"net/http"

	"github.com/voyagehq/voyagehub/internal/app/policy/groupaccess"
	groupstore "github.com/voyagehq/voyagehub/internal/app/store/groups"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"go.uber.org/zap"
)

// HandleJoinGroup handles POST /groups/{id}/join. Private groups require a
// matching invite code; the store enforces capacity and uniqueness
// atomically, so two racing joins for the last seat resolve to one winner.
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	gid, err := groupID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid, ok := currentUserID(r)
	if !ok {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	// Body is optional for public groups.
	var req joinGroupRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
			webjson.WriteError(w, h.Log, err)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "join group")
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.GetByID(ctx, gid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if err := groupaccess.CheckJoin(g, req.InviteCode); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	m, err := store.Join(ctx, gid, uid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("member joined group",
		zap.String("group_id", gid.Hex()),
		zap.String("user_id", uid.Hex()))

	webjson.Write(w, http.StatusOK, memberResponse{
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	})
}

// HandleLeaveGroup handles POST /groups/{id}/leave. The creator cannot
// leave; deactivating the group is their exit.
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	gid, err := groupID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid, ok := currentUserID(r)
	if !ok {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "leave group")
	defer cancel()

	if err := groupstore.New(h.DB).Leave(ctx, gid, uid); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("member left group",
		zap.String("group_id", gid.Hex()),
		zap.String("user_id", uid.Hex()))

	webjson.Write(w, http.StatusNoContent, nil)
}

// HandleDeactivateGroup handles DELETE /groups/{id}. Creator only. The
// group document survives with is_active=false and every subsequent read
// or write treats it as missing.
func (h *Handler) HandleDeactivateGroup(w http.ResponseWriter, r *http.Request) {
	gid, err := groupID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid, ok := currentUserID(r)
	if !ok {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "deactivate group")
	defer cancel()

	if err := groupstore.New(h.DB).Deactivate(ctx, gid, uid); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group deactivated",
		zap.String("group_id", gid.Hex()),
		zap.String("user_id", uid.Hex()))

	webjson.Write(w, http.StatusNoContent, nil)
}
