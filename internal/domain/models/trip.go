// internal/domain/models/trip.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendant roles within a trip.
const (
	RoleEmployee  = "employee"
	RoleEmployer  = "employer"
	RoleModerator = "moderator"
)

// Trip and attendant statuses.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Attendant links a user to a trip with a role and a status.
type Attendant struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
	Role     string             `bson:"role" json:"role"`
	Status   string             `bson:"status" json:"status"`
}

// Invite is a redeemable join code embedded on the trip.
type Invite struct {
	Code      string             `bson:"code" json:"code"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"created_by"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

// Trip is the top-level aggregate daily logs are scoped under.
//
// NOTE:
//   - The creator is always present in Attendants as an active employer.
//   - Status transitions active → ended once; EndDate is stamped at that
//     transition.
type Trip struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	CreatorID primitive.ObjectID `bson:"creator_id" json:"creator_id"`

	Title       string    `bson:"title" json:"title"`
	TitleCI     string    `bson:"title_ci" json:"title_ci"`
	Description string    `bson:"description" json:"description"`
	Locations   []string  `bson:"locations,omitempty" json:"locations,omitempty"`
	StartDate   time.Time `bson:"start_date" json:"start_date"`
	EndDate     time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	Status     string      `bson:"status" json:"status"`
	Attendants []Attendant `bson:"attendants" json:"attendants"`
	Invites    []Invite    `bson:"invites,omitempty" json:"invites,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ActiveAttendant returns the attendant record for userID if that user is
// an active attendant of the trip.
func (t Trip) ActiveAttendant(userID primitive.ObjectID) (Attendant, bool) {
	for _, a := range t.Attendants {
		if a.UserID == userID && a.Status == StatusActive {
			return a, true
		}
	}
	return Attendant{}, false
}
