// internal/app/features/trips/triplist.go
package trips

import (
	"context"
	"net/http"

	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	userstore "github.com/dalemusser/triplog/internal/app/store/users"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/dalemusser/triplog/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type tripListResponse struct {
	Trips []models.Trip `json:"trips"`
}

// ServeMyTrips handles GET /trips: every trip the caller is linked to,
// active and ended alike.
func (h *Handler) ServeMyTrips(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	usrStore := userstore.New(h.DB)
	user, err := usrStore.GetByID(ctx, uid)
	if err == mongo.ErrNoDocuments {
		// Session points at a deleted account.
		httpjson.Unauthorized(w)
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "list trips: load user", err)
		return
	}

	trpStore := tripstore.New(h.DB)
	list, err := trpStore.GetByIDs(ctx, user.ActiveTrips)
	if err != nil {
		httpjson.ServerError(w, h.Log, "list trips", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, tripListResponse{Trips: list})
}
