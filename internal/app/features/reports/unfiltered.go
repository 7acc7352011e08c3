// internal/app/features/reports/unfiltered.go
package reports

import (
	"context"
	"net/http"

	dailylogstore "github.com/dalemusser/triplog/internal/app/store/dailylogs"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/dalemusser/triplog/internal/domain/models"
)

type unfilteredResponse struct {
	Trip    models.Trip            `json:"trip"`
	Entries []models.DailyLogEntry `json:"entries"`
}

// ServeUnfiltered handles GET /reports/unfiltered?tripId=&userId=&date=.
// It returns every entry in scope, main and attendant alike, newest first,
// with applied_to and related_logs exactly as stored; grouping them back
// into main/attendant views is the consumer's concern.
func (h *Handler) ServeUnfiltered(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	scope, ok := h.parseScope(ctx, w, r, uid)
	if !ok {
		return
	}

	logStore := dailylogstore.New(h.DB)
	entries, err := logStore.FetchUnfiltered(ctx, scope.Trip.ID, scope.UserID, scope.Day)
	if err != nil {
		httpjson.ServerError(w, h.Log, "unfiltered report", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, unfilteredResponse{
		Trip:    scope.Trip,
		Entries: entries,
	})
}
