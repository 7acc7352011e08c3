// internal/app/features/trips/tripnew.go
package trips

import (
	"context"
	"net/http"
	"time"

	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	userstore "github.com/dalemusser/triplog/internal/app/store/users"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/textsanitize"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/dalemusser/triplog/internal/domain/models"
	"go.uber.org/zap"
)

const maxTitleLen = 200

type createTripInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Locations   []string  `json:"locations"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type createTripResponse struct {
	Trip       models.Trip `json:"trip"`
	InviteCode string      `json:"invite_code"`
}

// HandleCreateTrip processes POST /trips. The caller becomes the trip's
// creator and its first active employer attendant, and receives the
// initial invite code for handing out to colleagues.
func (h *Handler) HandleCreateTrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var in createTripInput
	if !httpjson.Decode(w, r, &in) {
		return
	}

	title := textsanitize.Clean(in.Title)
	if title == "" {
		httpjson.Validation(w, "title is required")
		return
	}
	if len(title) > maxTitleLen {
		httpjson.Validation(w, "title is too long")
		return
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		httpjson.Validation(w, "end_date must not precede start_date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	trpStore := tripstore.New(h.DB)
	trip, code, err := trpStore.Create(ctx, uid, tripstore.BasicInfo{
		Title:       title,
		Description: textsanitize.Clean(in.Description),
		Locations:   textsanitize.CleanAll(in.Locations),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		httpjson.ServerError(w, h.Log, "create trip", err)
		return
	}

	usrStore := userstore.New(h.DB)
	if err := usrStore.AddActiveTrip(ctx, uid, trip.ID); err != nil {
		// The trip document exists; only the creator's membership list is
		// stale. Surface it rather than hand back a half-linked trip.
		h.Log.Error("create trip: add active trip",
			zap.String("trip_id", trip.ID.Hex()),
			zap.String("user_id", uid.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, h.Log, "create trip", err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, createTripResponse{Trip: trip, InviteCode: code})
}
