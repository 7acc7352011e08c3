// internal/app/features/trips/tripview.go
package trips

import (
	"context"
	"net/http"

	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeTripView handles GET /trips/{id}. Only active attendants may view
// a trip.
func (h *Handler) ServeTripView(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	tripID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Validation(w, "invalid trip id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	trpStore := tripstore.New(h.DB)
	trip, err := trpStore.GetByID(ctx, tripID)
	if err == tripstore.ErrNotFound {
		httpjson.NotFound(w, "trip not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "view trip", err)
		return
	}

	if _, ok := trip.ActiveAttendant(uid); !ok {
		httpjson.Forbidden(w, "you are not an attendant of this trip")
		return
	}

	httpjson.Respond(w, http.StatusOK, trip)
}
