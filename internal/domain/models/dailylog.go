// internal/domain/models/dailylog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item types for daily-log entries. Every entry records exactly one of
// these; a user can hold one entry per (trip, day, item type).
const (
	ItemTravel        = "travel"
	ItemWorktime      = "worktime"
	ItemAccommodation = "accommodation"
	ItemAdditional    = "additional"
)

// AllItemTypes lists every item type in presentation order.
var AllItemTypes = []string{ItemTravel, ItemWorktime, ItemAccommodation, ItemAdditional}

// ValidItemType reports whether s is one of the known item types.
func ValidItemType(s string) bool {
	for _, t := range AllItemTypes {
		if s == t {
			return true
		}
	}
	return false
}

// DailyLogEntry is one daily-log record inside a trip.
//
// NOTE:
//   - IsGroupSource marks the "main" entry for its (trip, day, item-type)
//     group. AppliedTo and RelatedLogs are meaningful only on main entries.
//   - RelatedLogs is derived. It is rewritten by the recompute routine in
//     the dailylogs store whenever AppliedTo changes and is never edited
//     by hand.
type DailyLogEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TripID   primitive.ObjectID `bson:"trip_id" json:"trip_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	DateTime time.Time          `bson:"date_time" json:"date_time"`
	ItemType string             `bson:"item_type" json:"item_type"`

	IsGroupSource bool                 `bson:"is_group_source" json:"is_group_source"`
	AppliedTo     []primitive.ObjectID `bson:"applied_to,omitempty" json:"applied_to,omitempty"`
	RelatedLogs   []primitive.ObjectID `bson:"related_logs,omitempty" json:"related_logs,omitempty"`

	// Sealed marks the entry as finalized. Informational for reporting;
	// save handlers refuse to modify sealed entries.
	Sealed bool `bson:"sealed" json:"sealed"`

	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
	Amount   int64  `bson:"amount,omitempty" json:"amount,omitempty"` // minor currency units
	Currency string `bson:"currency,omitempty" json:"currency,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
