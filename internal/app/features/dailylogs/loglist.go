// internal/app/features/dailylogs/loglist.go
package dailylogs

import (
	"context"
	"net/http"

	dailylogstore "github.com/dalemusser/triplog/internal/app/store/dailylogs"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type logListResponse struct {
	Entries []models.DailyLogEntry `json:"entries"`
}

// ServeLogList handles GET /trips/{tripID}/logs?date=&userId=. Both
// filters are optional; entries come back newest first.
func (h *Handler) ServeLogList(w http.ResponseWriter, r *http.Request) {
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
	userID, ok := optionalUserParam(r)
	if !ok {
		httpjson.Validation(w, "invalid userId")
		return
	}
	day, ok := optionalDayParam(r)
	if !ok {
		httpjson.Validation(w, "invalid date; expected YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, _, ok := h.requireAttendant(ctx, w, tripID, uid); !ok {
		return
	}

	logStore := dailylogstore.New(h.DB)
	entries, err := logStore.FetchUnfiltered(ctx, tripID, userID, day)
	if err != nil {
		httpjson.ServerError(w, h.Log, "list daily logs", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, logListResponse{Entries: entries})
}
