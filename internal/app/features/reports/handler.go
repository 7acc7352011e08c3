// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"net/http"
	"time"

	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const dayLayout = "2006-01-02"

// Handler is the shared dependency container for the reports feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}

// reportScope is the parsed and permission-checked query for one report
// request.
type reportScope struct {
	Trip   models.Trip
	UserID *primitive.ObjectID
	Day    *time.Time
}

// parseScope reads tripId/userId/date from the query string, verifies the
// caller attends the trip, and writes the failure response itself. tripId
// is required; the rest narrow the report.
func (h *Handler) parseScope(ctx context.Context, w http.ResponseWriter, r *http.Request, callerID primitive.ObjectID) (reportScope, bool) {
	rawTrip := query.Get(r, "tripId")
	if rawTrip == "" {
		httpjson.Validation(w, "tripId is required")
		return reportScope{}, false
	}
	tripID, err := primitive.ObjectIDFromHex(rawTrip)
	if err != nil {
		httpjson.Validation(w, "invalid tripId")
		return reportScope{}, false
	}

	var scope reportScope
	if raw := query.Get(r, "userId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Validation(w, "invalid userId")
			return reportScope{}, false
		}
		scope.UserID = &id
	}
	if raw := query.Get(r, "date"); raw != "" {
		day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
		if err != nil {
			httpjson.Validation(w, "invalid date; expected YYYY-MM-DD")
			return reportScope{}, false
		}
		scope.Day = &day
	}

	trpStore := tripstore.New(h.DB)
	trip, err := trpStore.GetByID(ctx, tripID)
	if err == tripstore.ErrNotFound {
		httpjson.NotFound(w, "trip not found")
		return reportScope{}, false
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "report: load trip", err)
		return reportScope{}, false
	}
	if _, ok := trip.ActiveAttendant(callerID); !ok {
		httpjson.Forbidden(w, "you are not an attendant of this trip")
		return reportScope{}, false
	}

	scope.Trip = trip
	return scope, true
}
