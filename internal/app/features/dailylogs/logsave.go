// internal/app/features/dailylogs/logsave.go
package dailylogs

import (
	"context"
	"net/http"
	"time"

	dailylogstore "github.com/dalemusser/triplog/internal/app/store/dailylogs"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/textsanitize"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type saveLogInput struct {
	ItemType      string    `json:"item_type"`
	DateTime      time.Time `json:"date_time"`
	IsGroupSource bool      `json:"is_group_source"`
	Notes         string    `json:"notes"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Sealed        bool      `json:"sealed"`
}

// HandleSaveLog handles PUT /trips/{tripID}/logs. One entry per
// (trip, user, item type, day): a second save on the same day updates the
// existing entry. Sealed entries reject further writes.
func (h *Handler) HandleSaveLog(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	tripID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "tripID"))
	if err != nil {
		httpjson.Validation(w, "invalid trip id")
		return
	}

	var in saveLogInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	if !models.ValidItemType(in.ItemType) {
		httpjson.Validation(w, "unknown item type")
		return
	}
	if in.DateTime.IsZero() {
		httpjson.Validation(w, "date_time is required")
		return
	}
	if in.Amount < 0 {
		httpjson.Validation(w, "amount must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	trip, _, ok := h.requireAttendant(ctx, w, tripID, uid)
	if !ok {
		return
	}
	if trip.Status == models.StatusEnded {
		httpjson.Forbidden(w, "this trip has ended; its logs are read-only")
		return
	}

	logStore := dailylogstore.New(h.DB)
	saved, err := logStore.Save(ctx, models.DailyLogEntry{
		TripID:        tripID,
		UserID:        uid,
		DateTime:      in.DateTime.UTC(),
		ItemType:      in.ItemType,
		IsGroupSource: in.IsGroupSource,
		Notes:         textsanitize.Clean(in.Notes),
		Amount:        in.Amount,
		Currency:      textsanitize.Clean(in.Currency),
		Sealed:        in.Sealed,
	})
	if err == dailylogstore.ErrSealed {
		httpjson.Forbidden(w, "this entry is sealed and cannot be changed")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "save daily log", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, saved)
}
