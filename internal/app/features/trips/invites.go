// internal/app/features/trips/invites.go
package trips

import (
	"context"
	"net/http"
	"strings"

	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	userstore "github.com/dalemusser/triplog/internal/app/store/users"
	"github.com/dalemusser/triplog/internal/app/system/auth"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type redeemInviteInput struct {
	Code string `json:"code"`
}

// HandleRedeemInvite handles POST /trips/invites/redeem. A valid code
// joins the caller to the trip as an active employee attendant; redeeming
// a code for a trip the caller already attends is a no-op that still
// returns the trip.
func (h *Handler) HandleRedeemInvite(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var in redeemInviteInput
	if !httpjson.Decode(w, r, &in) {
		return
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		httpjson.Validation(w, "code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	trpStore := tripstore.New(h.DB)
	trip, err := trpStore.RedeemInvite(ctx, code, uid)
	if err == tripstore.ErrInviteInvalid {
		httpjson.NotFound(w, "invite code is invalid or expired")
		return
	}
	if err == tripstore.ErrTripEnded {
		httpjson.Forbidden(w, "this trip has already ended")
		return
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "redeem invite", err)
		return
	}

	usrStore := userstore.New(h.DB)
	if err := usrStore.AddActiveTrip(ctx, uid, trip.ID); err != nil {
		h.Log.Error("redeem invite: add active trip",
			zap.String("trip_id", trip.ID.Hex()),
			zap.String("user_id", uid.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, h.Log, "redeem invite", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, trip)
}
