package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/triplog/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		LoginID:    email,
		LoginIDCI:  text.Fold(email),
		AuthMethod: "google",
		Status:     models.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTrip creates an active test trip with the creator seeded as its
// employer attendant.
func (f *Fixtures) CreateTrip(ctx context.Context, title string, creatorID primitive.ObjectID) models.Trip {
	f.t.Helper()

	now := time.Now().UTC()
	trip := models.Trip{
		ID:        primitive.NewObjectID(),
		CreatorID: creatorID,
		Title:     title,
		TitleCI:   text.Fold(title),
		StartDate: now,
		Status:    models.StatusActive,
		Attendants: []models.Attendant{{
			UserID:   creatorID,
			JoinedAt: now,
			Role:     models.RoleEmployer,
			Status:   models.StatusActive,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("trips").InsertOne(ctx, trip); err != nil {
		f.t.Fatalf("failed to create test trip: %v", err)
	}
	return trip
}

// AddAttendant appends an active employee attendant to the trip document.
func (f *Fixtures) AddAttendant(ctx context.Context, tripID, userID primitive.ObjectID) {
	f.t.Helper()

	attendant := models.Attendant{
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
		Role:     models.RoleEmployee,
		Status:   models.StatusActive,
	}
	_, err := f.db.Collection("trips").UpdateByID(ctx, tripID, map[string]any{
		"$push": map[string]any{"attendants": attendant},
	})
	if err != nil {
		f.t.Fatalf("failed to add test attendant: %v", err)
	}
}

// CreateLogEntry inserts a daily-log entry directly.
func (f *Fixtures) CreateLogEntry(ctx context.Context, tripID, userID primitive.ObjectID, itemType string, at time.Time, groupSource bool) models.DailyLogEntry {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.DailyLogEntry{
		ID:            primitive.NewObjectID(),
		TripID:        tripID,
		UserID:        userID,
		DateTime:      at,
		ItemType:      itemType,
		IsGroupSource: groupSource,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("daily_logs").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test log entry: %v", err)
	}
	return e
}
