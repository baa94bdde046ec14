// internal/app/features/groups/create.go
package groups

import (
	"net/http"

	groupstore "github.com/voyagehq/voyagehub/internal/app/store/groups"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/normalize"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreateGroup handles POST /groups. The creator becomes the group's
// first member; private groups carry their invite code from creation.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		webjson.WriteError(w, h.Log, apperr.ErrForbidden)
		return
	}

	var req createGroupRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Name = htmlsanitize.Plain(normalize.Name(req.Name))
	req.Description = htmlsanitize.Plain(normalize.Name(req.Description))
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create group")
	defer cancel()

	created, err := groupstore.New(h.DB).Create(ctx, models.Group{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   uid,
		IsPublic:    isPublic,
		MaxMembers:  req.MaxMembers,
	})
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group created",
		zap.String("group_id", created.ID.Hex()),
		zap.String("creator_id", uid.Hex()),
		zap.Bool("is_public", created.IsPublic))

	webjson.Write(w, http.StatusCreated, toGroupResponse(created, uid, true))
}
