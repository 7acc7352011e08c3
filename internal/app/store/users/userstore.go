// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/triplog/internal/app/system/normalize"
	"github.com/dalemusser/triplog/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpsertGoogleUser finds the user by login id, creating the account on
// first login. The display name is refreshed from what Google reported.
func (s *Store) UpsertGoogleUser(ctx context.Context, fullName, email string) (models.User, error) {
	now := time.Now().UTC()
	email = normalize.Email(email)
	fullName = normalize.Name(fullName)

	filter := bson.M{"login_id_ci": text.Fold(email)}
	update := bson.M{
		"$set": bson.M{
			"full_name":    fullName,
			"full_name_ci": text.Fold(fullName),
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"_id":         primitive.NewObjectID(),
			"login_id":    email,
			"login_id_ci": text.Fold(email),
			"auth_method": "google",
			"status":      models.StatusActive,
			"created_at":  now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// AddActiveTrip registers a trip in the user's active-trip list.
func (s *Store) AddActiveTrip(ctx context.Context, userID, tripID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"active_trips": tripID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// RemoveActiveTrip drops a trip from the user's active-trip list.
func (s *Store) RemoveActiveTrip(ctx context.Context, userID, tripID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"active_trips": tripID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
