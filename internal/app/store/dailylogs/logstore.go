// internal/app/store/dailylogs/logstore.go
package dailylogstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/dalemusser/triplog/internal/domain/sharing"
)

var (
	ErrNotFound = errors.New("daily-log entry not found")
	ErrSealed   = errors.New("daily-log entry is sealed")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("daily_logs")}
}

// DayWindow returns the half-open UTC day range [start, start+24h)
// containing t. Entries store native timestamps; day filters always use
// this window rather than string prefixes.
func DayWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.DailyLogEntry, error) {
	var e models.DailyLogEntry
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return models.DailyLogEntry{}, ErrNotFound
	}
	if err != nil {
		return models.DailyLogEntry{}, err
	}
	return e, nil
}

// FindForUserDay returns the user's entry for the given trip, item type,
// and day, or ErrNotFound.
func (s *Store) FindForUserDay(ctx context.Context, tripID, userID primitive.ObjectID, itemType string, day time.Time) (models.DailyLogEntry, error) {
	start, end := DayWindow(day)
	var e models.DailyLogEntry
	err := s.c.FindOne(ctx, bson.M{
		"trip_id":   tripID,
		"user_id":   userID,
		"item_type": itemType,
		"date_time": bson.M{"$gte": start, "$lt": end},
	}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return models.DailyLogEntry{}, ErrNotFound
	}
	if err != nil {
		return models.DailyLogEntry{}, err
	}
	return e, nil
}

// Save upserts the entry keyed by (trip, user, item type, day). A sealed
// existing entry rejects the write with ErrSealed. Derived fields
// (applied_to, related_logs) are never touched here; use
// RecomputeRelatedLogs for those.
func (s *Store) Save(ctx context.Context, e models.DailyLogEntry) (models.DailyLogEntry, error) {
	now := time.Now().UTC()

	existing, err := s.FindForUserDay(ctx, e.TripID, e.UserID, e.ItemType, e.DateTime)
	if err != nil && err != ErrNotFound {
		return models.DailyLogEntry{}, err
	}

	if err == ErrNotFound {
		e.ID = primitive.NewObjectID()
		e.CreatedAt = now
		e.UpdatedAt = now
		e.RelatedLogs = nil
		if _, err := s.c.InsertOne(ctx, e); err != nil {
			return models.DailyLogEntry{}, err
		}
		return e, nil
	}

	if existing.Sealed {
		return models.DailyLogEntry{}, ErrSealed
	}

	set := bson.M{
		"date_time":  e.DateTime,
		"notes":      e.Notes,
		"amount":     e.Amount,
		"currency":   e.Currency,
		"sealed":     e.Sealed,
		"updated_at": now,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.DailyLogEntry
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return models.DailyLogEntry{}, err
	}
	return updated, nil
}

// InsertAttendantCopy inserts a non-group-source entry for an attendant,
// mirroring a main entry's instant and item type. Used when a main entry's
// content is propagated to applied-to users.
func (s *Store) InsertAttendantCopy(ctx context.Context, main models.DailyLogEntry, userID primitive.ObjectID) (models.DailyLogEntry, error) {
	now := time.Now().UTC()
	e := models.DailyLogEntry{
		ID:            primitive.NewObjectID(),
		TripID:        main.TripID,
		UserID:        userID,
		DateTime:      main.DateTime,
		ItemType:      main.ItemType,
		IsGroupSource: false,
		Notes:         main.Notes,
		Amount:        main.Amount,
		Currency:      main.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.DailyLogEntry{}, err
	}
	return e, nil
}

// RecomputeRelatedLogs rewrites the main entry's related-log list for the
// new applied-to selection.
//
// The entry missing, or not being a group source, is a silent no-op:
// recomputation is only meaningful for main entries. Candidates are read
// with a day-window query and narrowed to the exact instant by
// sharing.RelatedIDs, then applied_to and related_logs are written back in
// one update, unconditionally replacing the previous values.
//
// There is no transaction or optimistic lock around the read-filter-write
// sequence; concurrent recomputations for the same entry are
// last-write-wins.
func (s *Store) RecomputeRelatedLogs(ctx context.Context, mainEntryID primitive.ObjectID, newAppliedTo []primitive.ObjectID) error {
	main, err := s.GetByID(ctx, mainEntryID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if !main.IsGroupSource {
		return nil
	}

	start, end := DayWindow(main.DateTime)
	cur, err := s.c.Find(ctx, bson.M{
		"trip_id":         main.TripID,
		"item_type":       main.ItemType,
		"is_group_source": false,
		"date_time":       bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var candidates []models.DailyLogEntry
	if err := cur.All(ctx, &candidates); err != nil {
		return err
	}

	related := sharing.RelatedIDs(main, candidates, newAppliedTo)

	_, err = s.c.UpdateByID(ctx, main.ID, bson.M{"$set": bson.M{
		"applied_to":   newAppliedTo,
		"related_logs": related,
		"updated_at":   time.Now().UTC(),
	}})
	return err
}

// FetchUnfiltered returns every entry for the trip, main and attendant
// alike, sorted by date_time descending with applied_to/related_logs
// untouched. userID and day are optional narrowing filters; reconstructing
// main/attendant grouping is the caller's concern.
func (s *Store) FetchUnfiltered(ctx context.Context, tripID primitive.ObjectID, userID *primitive.ObjectID, day *time.Time) ([]models.DailyLogEntry, error) {
	filter := bson.M{"trip_id": tripID}
	if userID != nil {
		filter["user_id"] = *userID
	}
	if day != nil {
		start, end := DayWindow(*day)
		filter["date_time"] = bson.M{"$gte": start, "$lt": end}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.DailyLogEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteScoped bulk-deletes entries in the trip, optionally narrowed to a
// user and a day. Returns the number of documents removed.
func (s *Store) DeleteScoped(ctx context.Context, tripID primitive.ObjectID, userID *primitive.ObjectID, day *time.Time) (int64, error) {
	filter := bson.M{"trip_id": tripID}
	if userID != nil {
		filter["user_id"] = *userID
	}
	if day != nil {
		start, end := DayWindow(*day)
		filter["date_time"] = bson.M{"$gte": start, "$lt": end}
	}

	res, err := s.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
