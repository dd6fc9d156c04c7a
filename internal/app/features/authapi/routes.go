// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints under the base path
// (typically "/api/auth" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/profile", h.HandleProfile)
	})

	return r
}
