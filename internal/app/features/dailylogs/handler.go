// internal/app/features/dailylogs/handler.go
package dailylogs

import (
	"context"
	"net/http"

	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	"github.com/dalemusser/triplog/internal/app/system/httpjson"
	"github.com/dalemusser/triplog/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the daily-logs feature.
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

// requireAttendant loads the trip and verifies the user is an active
// attendant, writing the failure response itself. The returned bool
// reports whether the caller may proceed.
func (h *Handler) requireAttendant(ctx context.Context, w http.ResponseWriter, tripID, userID primitive.ObjectID) (models.Trip, models.Attendant, bool) {
	trpStore := tripstore.New(h.DB)
	trip, err := trpStore.GetByID(ctx, tripID)
	if err == tripstore.ErrNotFound {
		httpjson.NotFound(w, "trip not found")
		return models.Trip{}, models.Attendant{}, false
	}
	if err != nil {
		httpjson.ServerError(w, h.Log, "load trip", err)
		return models.Trip{}, models.Attendant{}, false
	}
	att, ok := trip.ActiveAttendant(userID)
	if !ok {
		httpjson.Forbidden(w, "you are not an attendant of this trip")
		return models.Trip{}, models.Attendant{}, false
	}
	return trip, att, true
}
