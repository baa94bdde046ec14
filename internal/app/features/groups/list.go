// internal/app/features/groups/list.go
package groups

import (
	"net/http"

	"github.com/voyagehq/voyagehub/internal/app/policy/groupaccess"
	groupstore "github.com/voyagehq/voyagehub/internal/app/store/groups"
	"github.com/voyagehq/voyagehub/internal/app/system/authz"
	"github.com/voyagehq/voyagehub/internal/app/system/paging"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
)

// listResponse wraps a page of groups.
type listResponse struct {
	Groups []groupResponse `json:"groups"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// ServeGroupsList handles GET /groups: active public groups, folded-name
// order. Works signed out; membership flags light up when signed in.
func (h *Handler) ServeGroupsList(w http.ResponseWriter, r *http.Request) {
	page := paging.ParsePage(r)
	limit := paging.ParseLimit(r)
	viewer := authz.UserID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list public groups")
	defer cancel()

	gs, err := groupstore.New(h.DB).ListPublic(ctx, page, limit)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	resp := listResponse{Groups: make([]groupResponse, 0, len(gs)), Page: page, Limit: limit}
	for _, g := range gs {
		resp.Groups = append(resp.Groups, toGroupResponse(g, viewer, groupaccess.IsMember(g, viewer)))
	}
	webjson.Write(w, http.StatusOK, resp)
}

// ServeMyGroups handles GET /groups/mine: every active group the signed-in
// user belongs to, public or private.
func (h *Handler) ServeMyGroups(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		webjson.Write(w, http.StatusOK, listResponse{Groups: []groupResponse{}})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list my groups")
	defer cancel()

	gs, err := groupstore.New(h.DB).ListByMember(ctx, uid)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	resp := listResponse{Groups: make([]groupResponse, 0, len(gs))}
	for _, g := range gs {
		resp.Groups = append(resp.Groups, toGroupResponse(g, uid, true))
	}
	webjson.Write(w, http.StatusOK, resp)
}
