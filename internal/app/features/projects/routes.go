// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the project endpoints. Reads are open to any signed-in
// user; writes require the manager role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeView)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("manager"))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
