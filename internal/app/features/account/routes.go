// internal/app/features/account/routes.go
package account

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account endpoints. Typically:
// r.Mount("/account", account.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Sessions.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
		pr.Put("/me", h.HandleUpdateProfile)
	})

	return r
}
