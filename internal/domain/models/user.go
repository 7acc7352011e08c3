// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an authenticated account. Authentication is delegated to
// Google; LoginID is the normalized email Google reported.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	LoginID    string             `bson:"login_id" json:"login_id"`
	LoginIDCI  string             `bson:"login_id_ci" json:"login_id_ci"`
	AuthMethod string             `bson:"auth_method" json:"auth_method"` // google
	Status     string             `bson:"status" json:"status"`

	// ActiveTrips lists trips the user currently participates in. Trip
	// creation and invite redemption append here; kept so dashboards can
	// load a user's trips with one GetByIDs call.
	ActiveTrips []primitive.ObjectID `bson:"active_trips,omitempty" json:"active_trips,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
