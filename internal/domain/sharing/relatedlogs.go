// internal/domain/sharing/relatedlogs.go
package sharing

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/triplog/internal/domain/models"
)

// RelatedIDs filters candidates down to the attendant entries linked to the
// main entry under the given applied-to selection, and returns their ids.
//
// A candidate qualifies when all of the following hold:
//   - same trip as main
//   - date_time equal to main's at the exact instant (the store queries by
//     day window; precision is restored here)
//   - same item type
//   - not itself a group source
//   - its user is in the applied-to selection
//   - it has a real id
//
// Candidate order is preserved, so the result is deterministic for a given
// query ordering.
func RelatedIDs(main models.DailyLogEntry, candidates []models.DailyLogEntry, appliedTo []primitive.ObjectID) []primitive.ObjectID {
	applied := make(map[primitive.ObjectID]struct{}, len(appliedTo))
	for _, id := range appliedTo {
		applied[id] = struct{}{}
	}

	ids := make([]primitive.ObjectID, 0, len(candidates))
	for _, c := range candidates {
		if c.TripID != main.TripID {
			continue
		}
		if !c.DateTime.Equal(main.DateTime) {
			continue
		}
		if c.ItemType != main.ItemType {
			continue
		}
		if c.IsGroupSource {
			continue
		}
		if _, ok := applied[c.UserID]; !ok {
			continue
		}
		if c.ID.IsZero() {
			continue
		}
		ids = append(ids, c.ID)
	}
	return ids
}
