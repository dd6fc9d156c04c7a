// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the assignment endpoints. Listing is open to any signed-in
// user (the handler scopes engineers to their own rows); writes require the
// manager role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireSignedIn)
		ar.Get("/", h.ServeList)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireRole("manager"))
		ar.Post("/", h.HandleCreate)
		ar.Put("/{id}", h.HandleUpdate)
		ar.Delete("/{id}", h.HandleDelete)
	})

	return r
}
