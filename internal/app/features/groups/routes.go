// internal/app/features/groups/routes.go
package groups

import (
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the group collaboration endpoints. Typically:
// r.Mount("/groups", groups.Routes(handler, sm))
//
// Only the public listing works signed out; every other endpoint needs a
// caller identity, with the public-or-member rule then governing visibility.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeGroupsList)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/", h.HandleCreateGroup)
		pr.Get("/mine", h.ServeMyGroups)

		pr.Get("/{id}", h.ServeGroupDetail)
		pr.Delete("/{id}", h.HandleDeactivateGroup)
		pr.Get("/{id}/invite", h.ServeInviteCode)

		pr.Post("/{id}/join", h.HandleJoinGroup)
		pr.Post("/{id}/leave", h.HandleLeaveGroup)

		pr.Get("/{id}/posts", h.ServeGroupPosts)
		pr.Post("/{id}/posts", h.HandleAddPost)

		pr.Get("/{id}/messages", h.ServeGroupMessages)
		pr.Post("/{id}/messages", h.HandleSendMessage)
	})

	return r
}
