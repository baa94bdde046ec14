// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
)

// Routes returns the review endpoints for one destination. The caller
// mounts this under a pattern carrying the destination's {id} parameter:
// r.Mount("/{id}/reviews", reviews.Routes(handler, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{reviewID}", h.HandleDelete)
	})

	return r
}
