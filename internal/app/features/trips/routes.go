// internal/app/features/trips/routes.go
package trips

import (
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Everything under /trips requires authentication.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeMyTrips)
		pr.Post("/", h.HandleCreateTrip)

		pr.Post("/invites/redeem", h.HandleRedeemInvite)

		pr.Get("/{id}", h.ServeTripView)
		pr.Post("/{id}/end", h.HandleEndTrip)
	})

	return r
}
