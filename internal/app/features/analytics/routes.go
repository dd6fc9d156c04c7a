// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireRole("manager"))
		ar.Get("/utilization", h.ServeUtilization)
	})
	return r
}
