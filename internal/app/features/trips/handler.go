// internal/app/features/trips/handler.go
package trips

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the trips feature.
// The per-operation handlers (create, list, view, end, invites) all
// build their stores off the same database handle.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a trips Handler. It is typically called from the
// bootstrap BuildHandler function, where the application's DB and logger
// are already initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:  db,
		Log: logger,
	}
}
