// Package indexes creates the MongoDB indexes the app relies on.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll is called at startup. Each ensure* function is idempotent.
// Problems are aggregated so every failing collection is visible and
// startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureTrips(ctx, db); err != nil {
		problems = append(problems, "trips: "+err.Error())
	}
	if err := ensureDailyLogs(ctx, db); err != nil {
		problems = append(problems, "daily_logs: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "login_id_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_users_login_ci"),
		},
	})
	return err
}

func ensureTrips(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("trips").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_trips_creator_status"),
		},
		{
			Keys:    bson.D{{Key: "invites.code", Value: 1}},
			Options: options.Index().SetName("idx_trips_invite_code"),
		},
	})
	return err
}

func ensureDailyLogs(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("daily_logs").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Resolver candidate query: trip + item type + day window.
		{
			Keys:    bson.D{{Key: "trip_id", Value: 1}, {Key: "item_type", Value: 1}, {Key: "date_time", Value: 1}},
			Options: options.Index().SetName("idx_logs_trip_type_time"),
		},
		// Report query: trip (+ optional user) ordered by time.
		{
			Keys:    bson.D{{Key: "trip_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "date_time", Value: -1}},
			Options: options.Index().SetName("idx_logs_trip_user_time"),
		},
	})
	return err
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("oauth_states").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_oauth_state"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_oauth_ttl"),
		},
	})
	return err
}
