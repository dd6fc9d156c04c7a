// internal/app/features/engineers/routes.go
package engineers

import (
	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the engineer endpoints under the base path
// (typically "/api/engineers" from bootstrap). Any signed-in user may read.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/{id}/capacity", h.ServeCapacity)
	})

	return r
}
