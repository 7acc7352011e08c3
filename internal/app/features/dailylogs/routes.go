// internal/app/features/dailylogs/routes.go
package dailylogs

import (
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes serves the trip-scoped log collection; mount under
// /trips/{tripID}/logs.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeLogList)
		pr.Put("/", h.HandleSaveLog)
		pr.Delete("/", h.HandleDeleteLogs)
	})

	return r
}

// EntryRoutes serves single-entry operations; mount under /logs.
func EntryRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/{id}/applied-to", h.HandleAppliedToChange)
	})

	return r
}
