// internal/app/features/destinations/routes.go
package destinations

import (
	"github.com/go-chi/chi/v5"
	"github.com/voyagehq/voyagehub/internal/app/system/auth"
	"github.com/voyagehq/voyagehub/internal/domain/models"
)

// Routes mounts the destination catalog endpoints. Typically:
// r.Mount("/destinations", destinations.Routes(handler, sm))
//
// Reads are open; writes are admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeCatalog)
	r.Get("/{id}", h.ServeDetail)

	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireRole(models.RoleAdmin))
		ar.Post("/", h.HandleCreate)
		ar.Put("/{id}", h.HandleUpdate)
	})

	return r
}
