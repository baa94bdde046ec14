// internal/app/features/itineraries/routes.go
package itineraries

import (
	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
)

// Routes mounts the itinerary endpoints. Typically:
// r.Mount("/itineraries", itineraries.Routes(handler, sm))
//
// The public listing and public plan details work signed out.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServePublic)
	r.Get("/{id}", h.ServeDetail)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.ServeMine)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
