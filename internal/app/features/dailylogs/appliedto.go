// internal/app/features/dailylogs/appliedto.go
package dailylogs

import (
	"context"
	"net/http"

	dailylogstore "github.com/dalemusser/triplog/internal/app/store/dailylogs"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/dalemusser/triplog/internal/domain/sharing"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type appliedToInput struct {
	AppliedTo []string `json:"applied_to"`
}

type appliedToResponse struct {
	Entry          models.DailyLogEntry `json:"entry"`
	ShareByDefault bool                 `json:"share_by_default"`
	SharedFields   []string             `json:"shared_fields"`
}

// HandleAppliedToChange handles POST /logs/{id}/applied-to. The new
// selection replaces the old one wholesale: attendants missing an entry at
// the main entry's instant get a copy inserted, then the related-log list
// is recomputed from scratch. Only the owner of a main entry may change
// its selection.
func (h *Handler) HandleAppliedToChange(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	entryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Validation(w, "invalid entry id")
		return
	}

	var in appliedToInput
	if !httpjson.Decode(w, r, &in) {
		return
	}
	appliedTo := make([]primitive.ObjectID, 0, len(in.AppliedTo))
	for _, raw := range in.AppliedTo {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Validation(w, "applied_to contains an invalid user id")
			return
		}
		appliedTo = append(appliedTo, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	logStore := dailylogstore.New(h.DB)
	main, err := logStore.GetByID(ctx, entryID)
	if err == dailylogstore.ErrNotFound {
		httpjson.NotFound(w, "entry not found")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "applied-to: load entry", err)
		return
	}
	if main.UserID != uid {
		httpjson.Forbidden(w, "only the entry's owner can change who it applies to")
		return
	}
	if !main.IsGroupSource {
		httpjson.Validation(w, "entry is not a group source")
		return
	}

	trip, _, ok := h.requireAttendant(ctx, w, main.TripID, uid)
	if !ok {
		return
	}

	// Every selected user must be an active attendant of the trip.
	for _, id := range appliedTo {
		if id == main.UserID {
			httpjson.Validation(w, "applied_to must not include the entry's owner")
			return
		}
		if _, ok := trip.ActiveAttendant(id); !ok {
			httpjson.Validation(w, "applied_to contains a user who is not an active attendant")
			return
		}
	}

	// Attendants without an entry at this instant get one, so the resolver
	// has something to link.
	for _, id := range appliedTo {
		_, err := logStore.FindForUserDay(ctx, main.TripID, id, main.ItemType, main.DateTime)
		if err == dailylogstore.ErrNotFound {
			if _, err := logStore.InsertAttendantCopy(ctx, main, id); err != nil {
				httpjson.ServerError(w, h.Log, "applied-to: insert attendant copy", err)
				return
			}
			continue
		}
		if err != nil {
			httpjson.ServerError(w, h.Log, "applied-to: find attendant entry", err)
			return
		}
	}

	if err := logStore.RecomputeRelatedLogs(ctx, main.ID, appliedTo); err != nil {
		httpjson.ServerError(w, h.Log, "applied-to: recompute related logs", err)
		return
	}

	updated, err := logStore.GetByID(ctx, main.ID)
	if err != nil {
		httpjson.ServerError(w, h.Log, "applied-to: reload entry", err)
		return
	}

	fields := sharing.InitialSharedFields(appliedTo, models.AllItemTypes)
	h.Log.Info("applied-to updated",
		zap.String("entry_id", main.ID.Hex()),
		zap.Int("applied_to", len(appliedTo)),
		zap.Int("related_logs", len(updated.RelatedLogs)))

	httpjson.Respond(w, http.StatusOK, appliedToResponse{
		Entry:          updated,
		ShareByDefault: sharing.ShouldShareByDefault(appliedTo),
		SharedFields:   fields.Slice(models.AllItemTypes),
	})
}
