// internal/app/features/favorites/routes.go
package favorites

import (
	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
)

// Routes mounts the favorites endpoints. Typically:
// r.Mount("/favorites", favorites.Routes(handler, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Put("/destinations/{id}", h.HandleSave)
	r.Delete("/destinations/{id}", h.HandleRemove)

	return r
}
