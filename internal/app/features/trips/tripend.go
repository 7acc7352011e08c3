// internal/app/features/trips/tripend.go
package trips

import (
	"context"
	"net/http"

	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleEndTrip handles POST /trips/{id}/end. Only the creator or an
// active employer attendant may end a trip. Ending an already-ended trip
// succeeds and re-stamps the end date.
func (h *Handler) HandleEndTrip(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	trpStore := tripstore.New(h.DB)
	trip, err := trpStore.GetByID(ctx, tripID)
	if err == tripstore.ErrNotFound {
		httpjson.NotFound(w, "trip not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "end trip: load trip", err)
		return
	}

	att, isAttendant := trip.ActiveAttendant(uid)
	if trip.CreatorID != uid && (!isAttendant || att.Role != models.RoleEmployer) {
		httpjson.Forbidden(w, "only the trip's employer can end it")
		return
	}

	ended, err := trpStore.End(ctx, tripID)
	if err == tripstore.ErrNotFound {
		httpjson.NotFound(w, "trip not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "end trip", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, ended)
}
