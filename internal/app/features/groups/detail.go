// internal/app/features/groups/detail.go
package groups

import (
	"net/http"

	"github.com/voyagehq/voyagehub/internal/app/policy/groupaccess"
	groupstore "github.com/voyagehq/voyagehub/internal/app/store/groups"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
)

// ServeGroupDetail handles GET /groups/{id}. Public groups are visible to
// any signed-in user; private groups only to members. Private groups report
// not-found (not forbidden) to non-members so their existence leaks nothing.
func (h *Handler) ServeGroupDetail(w http.ResponseWriter, r *http.Request) {
	gid, err := groupID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid, _ := currentUserID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "group detail")
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, gid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	if !groupaccess.CanView(g, uid) {
		webjson.WriteError(w, h.Log, apperr.ErrNotFound)
		return
	}

	webjson.Write(w, http.StatusOK, toGroupDetailResponse(g, uid, groupaccess.IsMember(g, uid)))
}

// ServeInviteCode handles GET /groups/{id}/invite. Members only. The code
// is created on first request and never rotates afterwards.
func (h *Handler) ServeInviteCode(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "group invite code")
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.GetByID(ctx, gid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	if !groupaccess.IsMember(g, uid) {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	code, err := store.EnsureInviteCode(ctx, gid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	webjson.Write(w, http.StatusOK, map[string]string{"invite_code": code})
}
