// internal/app/features/dailylogs/logdelete.go
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

type deleteLogsResponse struct {
	Deleted int64 `json:"deleted"`
}

// HandleDeleteLogs handles DELETE /trips/{tripID}/logs?date=&userId=.
// Employers may delete any attendant's entries; everyone else is scoped
// to their own, whatever userId says.
func (h *Handler) HandleDeleteLogs(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, att, ok := h.requireAttendant(ctx, w, tripID, uid)
	if !ok {
		return
	}
	if att.Role != models.RoleEmployer {
		if userID != nil && *userID != uid {
			httpjson.Forbidden(w, "you may only delete your own entries")
			return
		}
		self := uid
		userID = &self
	}

	logStore := dailylogstore.New(h.DB)
	deleted, err := logStore.DeleteScoped(ctx, tripID, userID, day)
	if err != nil {
		httpjson.ServerError(w, h.Log, "delete daily logs", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, deleteLogsResponse{Deleted: deleted})
}
