// internal/app/features/groups/posts.go
package groups

import (
	"net/http"

	"github.com/voyagehq/voyagehub/internal/app/policy/groupaccess"
	groupstore "github.com/voyagehq/voyagehub/internal/app/store/groups"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/htmlsanitize"
	"github.com/voyagehq/voyagehub/internal/app/system/inputval"
	"github.com/voyagehq/voyagehub/internal/app/system/limits"
	"github.com/voyagehq/voyagehub/internal/app/system/photokey"
	"github.com/voyagehq/voyagehub/internal/app/system/timeouts"
	"github.com/voyagehq/voyagehub/internal/app/system/webjson"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"go.uber.org/zap"
)

// maxPostPhotos bounds the number of photos on one post.
const maxPostPhotos = 10

// postsResponse wraps a group's feed, newest entries last (insertion order).
type postsResponse struct {
	Posts []models.GroupPost `json:"posts"`
}

// ServeGroupPosts handles GET /groups/{id}/posts. Visible wherever the
// group detail is visible.
func (h *Handler) ServeGroupPosts(w http.ResponseWriter, r *http.Request) {
	gid, err := groupID(r)
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	uid, _ := currentUserID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "group posts")
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

	posts := g.Posts
	if posts == nil {
		posts = []models.GroupPost{}
	}
	webjson.Write(w, http.StatusOK, postsResponse{Posts: posts})
}

// HandleAddPost handles POST /groups/{id}/posts. Members only.
func (h *Handler) HandleAddPost(w http.ResponseWriter, r *http.Request) {
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

	var req addPostRequest
	if err := webjson.Decode(w, r, &req, limits.MaxJSONBodySize); err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}
	req.Content = htmlsanitize.Plain(req.Content)
	if res := inputval.Validate(&req); res.HasErrors() {
		webjson.WriteError(w, h.Log, validationError(res))
		return
	}
	if len(req.Photos) > maxPostPhotos {
		webjson.WriteError(w, h.Log, apperr.Validation("photos", "A post can carry at most 10 photos."))
		return
	}
	for _, p := range req.Photos {
		if p == "" {
			webjson.WriteError(w, h.Log, apperr.Validation("photos", "Photo filenames must not be empty."))
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add post")
	defer cancel()

	// Submitted names are only used to derive server-assigned storage keys.
	post, err := groupstore.New(h.DB).AppendPost(ctx, gid, uid, req.Content, photokey.NewBatch(req.Photos))
	if err != nil {
		webjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("post added",
		zap.String("group_id", gid.Hex()),
		zap.String("post_id", post.ID.Hex()),
		zap.String("author_id", uid.Hex()))

	webjson.Write(w, http.StatusCreated, post)
}
