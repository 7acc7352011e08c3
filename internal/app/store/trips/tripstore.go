// internal/app/store/trips/tripstore.go
package tripstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/triplog/internal/domain/models"
)

// InviteTTL is how long a freshly issued invite code stays redeemable.
const InviteTTL = 7 * 24 * time.Hour

var (
	ErrNotFound      = errors.New("trip not found")
	ErrInviteInvalid = errors.New("invite code is invalid or expired")
	ErrTripEnded     = errors.New("trip has ended")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("trips")}
}

// BasicInfo carries the trip metadata supplied at creation.
type BasicInfo struct {
	Title       string
	Description string
	Locations   []string
	StartDate   time.Time
	EndDate     time.Time
}

// Create inserts a new trip with the creator seeded as its sole active
// employer attendant and one invite code valid for InviteTTL. The invite
// code is returned alongside the trip so the caller can hand it out.
func (s *Store) Create(ctx context.Context, creatorID primitive.ObjectID, info BasicInfo) (models.Trip, string, error) {
	now := time.Now().UTC()
	code := uuid.NewString()[:8]

	t := models.Trip{
		ID:          primitive.NewObjectID(),
		CreatorID:   creatorID,
		Title:       info.Title,
		TitleCI:     text.Fold(info.Title),
		Description: info.Description,
		Locations:   info.Locations,
		StartDate:   info.StartDate,
		EndDate:     info.EndDate,
		Status:      models.StatusActive,
		Attendants: []models.Attendant{{
			UserID:   creatorID,
			JoinedAt: now,
			Role:     models.RoleEmployer,
			Status:   models.StatusActive,
		}},
		Invites: []models.Invite{{
			Code:      code,
			CreatedBy: creatorID,
			ExpiresAt: now.Add(InviteTTL),
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Trip{}, "", err
	}
	return t, code, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Trip, error) {
	var t models.Trip
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return models.Trip{}, ErrNotFound
	}
	if err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

// GetByIDs bulk-fetches trips. An empty id list returns an empty slice
// without touching the database.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Trip, error) {
	if len(ids) == 0 {
		return []models.Trip{}, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	trips := []models.Trip{}
	if err := cur.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// ListByCreator returns trips created by the user, newest first.
func (s *Store) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"creator_id": creatorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	trips := []models.Trip{}
	if err := cur.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// End transitions the trip to ended and stamps the end date with the
// current instant. Ending an already-ended trip re-stamps the end date;
// idempotency is deliberately not enforced.
func (s *Store) End(ctx context.Context, id primitive.ObjectID) (models.Trip, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":     models.StatusEnded,
		"end_date":   now,
		"updated_at": now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t models.Trip
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return models.Trip{}, ErrNotFound
	}
	if err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

// RedeemInvite joins userID to the trip holding a non-expired invite with
// the given code, as an active employee attendant. Redeeming a code for a
// trip the user already attends is a no-op returning the trip unchanged.
func (s *Store) RedeemInvite(ctx context.Context, code string, userID primitive.ObjectID) (models.Trip, error) {
	now := time.Now().UTC()

	var t models.Trip
	err := s.c.FindOne(ctx, bson.M{
		"invites": bson.M{"$elemMatch": bson.M{
			"code":       code,
			"expires_at": bson.M{"$gt": now},
		}},
	}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return models.Trip{}, ErrInviteInvalid
	}
	if err != nil {
		return models.Trip{}, err
	}

	if t.Status == models.StatusEnded {
		return models.Trip{}, ErrTripEnded
	}
	if _, ok := t.ActiveAttendant(userID); ok {
		return t, nil
	}

	attendant := models.Attendant{
		UserID:   userID,
		JoinedAt: now,
		Role:     models.RoleEmployee,
		Status:   models.StatusActive,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": t.ID}, bson.M{
		"$push": bson.M{"attendants": attendant},
		"$set":  bson.M{"updated_at": now},
	}, opts).Decode(&t)
	if err != nil {
		return models.Trip{}, err
	}
	return t, nil
}
