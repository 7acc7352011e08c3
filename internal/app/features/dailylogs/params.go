// internal/app/features/dailylogs/params.go
package dailylogs

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dayLayout = "2006-01-02"

// optionalUserParam parses the userId query parameter. A missing param
// yields (nil, true); a malformed one yields (nil, false).
func optionalUserParam(r *http.Request) (*primitive.ObjectID, bool) {
	raw := query.Get(r, "userId")
	if raw == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// optionalDayParam parses the date query parameter (YYYY-MM-DD, UTC).
// A missing param yields (nil, true); a malformed one yields (nil, false).
func optionalDayParam(r *http.Request) (*time.Time, bool) {
	raw := query.Get(r, "date")
	if raw == "" {
		return nil, true
	}
	day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		return nil, false
	}
	return &day, true
}
