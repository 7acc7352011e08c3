package dailylogs_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/triplog/internal/app/features/dailylogs"
	dailylogstore "github.com/dalemusser/triplog/internal/app/store/dailylogs"
	tripstore "github.com/dalemusser/triplog/internal/app/store/trips"
	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/dalemusser/triplog/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestHandleSaveLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	user := f.CreateUser(ctx, "Logger", "logger@example.com")
	trip := f.CreateTrip(ctx, "Log Trip", user.ID)

	h := dailylogs.NewHandler(db, zap.NewNop())
	asUser := testutil.UserFor(user.ID, user.FullName, user.LoginID)
	target := "/trips/" + trip.ID.Hex() + "/logs"

	save := func(body string) *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(http.MethodPut, target, body, asUser)
		req = testutil.WithChiURLParam(req, "tripID", trip.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleSaveLog(rec.ResponseRecorder, req)
		return rec
	}

	t.Run("creates then updates the same day", func(t *testing.T) {
		rec := save(`{"item_type":"travel","date_time":"2026-03-02T08:30:00Z","notes":"train out","amount":4500,"currency":"EUR"}`)
		rec.AssertStatus(t, http.StatusOK)

		var first models.DailyLogEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
			t.Fatalf("decode response: %v", err)
		}

		rec = save(`{"item_type":"travel","date_time":"2026-03-02T17:45:00Z","notes":"train back too","amount":9000,"currency":"EUR"}`)
		rec.AssertStatus(t, http.StatusOK)

		var second models.DailyLogEntry
		if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("same-day save should update in place: got %s, want %s", second.ID.Hex(), first.ID.Hex())
		}
		if second.Amount != 9000 {
			t.Errorf("amount: got %d, want 9000", second.Amount)
		}
	})

	t.Run("sealed entry rejects writes", func(t *testing.T) {
		rec := save(`{"item_type":"worktime","date_time":"2026-03-03T09:00:00Z","sealed":true}`)
		rec.AssertStatus(t, http.StatusOK)

		rec = save(`{"item_type":"worktime","date_time":"2026-03-03T10:00:00Z","notes":"late edit"}`)
		rec.AssertStatus(t, http.StatusForbidden)
	})

	t.Run("unknown item type", func(t *testing.T) {
		rec := save(`{"item_type":"snacks","date_time":"2026-03-04T09:00:00Z"}`)
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("ended trip is read-only", func(t *testing.T) {
		if _, err := tripstore.New(db).End(ctx, trip.ID); err != nil {
			t.Fatalf("end trip: %v", err)
		}
		rec := save(`{"item_type":"travel","date_time":"2026-03-05T09:00:00Z"}`)
		rec.AssertStatus(t, http.StatusForbidden)
	})
}

func TestServeLogList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	mate := f.CreateUser(ctx, "Mate", "mate@example.com")
	trip := f.CreateTrip(ctx, "List Trip", owner.ID)
	f.AddAttendant(ctx, trip.ID, mate.ID)

	day := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemTravel, day, true)
	f.CreateLogEntry(ctx, trip.ID, mate.ID, models.ItemTravel, day, false)
	f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemWorktime, day.AddDate(0, 0, 1), false)

	h := dailylogs.NewHandler(db, zap.NewNop())
	asOwner := testutil.UserFor(owner.ID, owner.FullName, owner.LoginID)

	list := func(target string) []models.DailyLogEntry {
		req := testutil.NewAuthenticatedRequest(http.MethodGet, target, "", asOwner)
		req = testutil.WithChiURLParam(req, "tripID", trip.ID.Hex())
		rec := testutil.NewRecorder()
		h.ServeLogList(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusOK)

		var resp struct {
			Entries []models.DailyLogEntry `json:"entries"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp.Entries
	}

	if got := list("/trips/" + trip.ID.Hex() + "/logs"); len(got) != 3 {
		t.Errorf("unfiltered: got %d entries, want 3", len(got))
	}
	if got := list("/trips/" + trip.ID.Hex() + "/logs?date=2026-04-10"); len(got) != 2 {
		t.Errorf("day filter: got %d entries, want 2", len(got))
	}
	if got := list("/trips/" + trip.ID.Hex() + "/logs?userId=" + mate.ID.Hex()); len(got) != 1 {
		t.Errorf("user filter: got %d entries, want 1", len(got))
	}
}

func TestHandleDeleteLogs_EmployeeScopedToSelf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	mate := f.CreateUser(ctx, "Mate", "mate@example.com")
	trip := f.CreateTrip(ctx, "Delete Trip", owner.ID)
	f.AddAttendant(ctx, trip.ID, mate.ID)

	day := time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC)
	f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemTravel, day, false)
	f.CreateLogEntry(ctx, trip.ID, mate.ID, models.ItemTravel, day, false)

	h := dailylogs.NewHandler(db, zap.NewNop())

	// The employee deletes without a userId filter; only their own entry
	// goes away.
	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/trips/"+trip.ID.Hex()+"/logs", "",
		testutil.UserFor(mate.ID, mate.FullName, mate.LoginID))
	req = testutil.WithChiURLParam(req, "tripID", trip.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDeleteLogs(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Deleted != 1 {
		t.Errorf("deleted: got %d, want 1", resp.Deleted)
	}

	remaining, err := dailylogstore.New(db).FetchUnfiltered(ctx, trip.ID, nil, nil)
	if err != nil {
		t.Fatalf("fetch remaining: %v", err)
	}
	if len(remaining) != 1 || remaining[0].UserID != owner.ID {
		t.Errorf("expected only the owner's entry to survive, got %+v", remaining)
	}

	// An employee naming someone else's userId is refused outright.
	req = testutil.NewAuthenticatedRequest(http.MethodDelete,
		"/trips/"+trip.ID.Hex()+"/logs?userId="+owner.ID.Hex(), "",
		testutil.UserFor(mate.ID, mate.FullName, mate.LoginID))
	req = testutil.WithChiURLParam(req, "tripID", trip.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDeleteLogs(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleAppliedToChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	u2 := f.CreateUser(ctx, "Second", "second@example.com")
	u3 := f.CreateUser(ctx, "Third", "third@example.com")
	trip := f.CreateTrip(ctx, "Shared Trip", owner.ID)
	f.AddAttendant(ctx, trip.ID, u2.ID)
	f.AddAttendant(ctx, trip.ID, u3.ID)

	instant := time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)
	main := f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemTravel, instant, true)
	// u2 already has an entry at the exact instant; u3 does not.
	existing := f.CreateLogEntry(ctx, trip.ID, u2.ID, models.ItemTravel, instant, false)

	h := dailylogs.NewHandler(db, zap.NewNop())
	asOwner := testutil.UserFor(owner.ID, owner.FullName, owner.LoginID)

	apply := func(user testutil.TestUser, entryID primitive.ObjectID, body string) *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(http.MethodPost, "/logs/"+entryID.Hex()+"/applied-to", body, user)
		req = testutil.WithChiURLParam(req, "id", entryID.Hex())
		rec := testutil.NewRecorder()
		h.HandleAppliedToChange(rec.ResponseRecorder, req)
		return rec
	}

	t.Run("links existing and inserted copies", func(t *testing.T) {
		rec := apply(asOwner, main.ID,
			`{"applied_to":["`+u2.ID.Hex()+`","`+u3.ID.Hex()+`"]}`)
		rec.AssertStatus(t, http.StatusOK)

		var resp struct {
			Entry          models.DailyLogEntry `json:"entry"`
			ShareByDefault bool                 `json:"share_by_default"`
			SharedFields   []string             `json:"shared_fields"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Entry.AppliedTo) != 2 {
			t.Errorf("applied_to: got %d, want 2", len(resp.Entry.AppliedTo))
		}
		if len(resp.Entry.RelatedLogs) != 2 {
			t.Fatalf("related_logs: got %d, want 2", len(resp.Entry.RelatedLogs))
		}
		foundExisting := false
		for _, id := range resp.Entry.RelatedLogs {
			if id == existing.ID {
				foundExisting = true
			}
		}
		if !foundExisting {
			t.Error("u2's pre-existing entry should be in related_logs")
		}
		if !resp.ShareByDefault {
			t.Error("non-empty applied_to should share by default")
		}
		if len(resp.SharedFields) != len(models.AllItemTypes) {
			t.Errorf("shared fields: got %v, want all item types", resp.SharedFields)
		}

		// u3 got an inserted copy mirroring the main entry's instant.
		copyEntry, err := dailylogstore.New(db).FindForUserDay(ctx, trip.ID, u3.ID, models.ItemTravel, instant)
		if err != nil {
			t.Fatalf("u3's copy should exist: %v", err)
		}
		if !copyEntry.DateTime.Equal(instant) {
			t.Errorf("copy instant: got %v, want %v", copyEntry.DateTime, instant)
		}
	})

	t.Run("clearing the selection empties related logs", func(t *testing.T) {
		rec := apply(asOwner, main.ID, `{"applied_to":[]}`)
		rec.AssertStatus(t, http.StatusOK)

		var resp struct {
			Entry          models.DailyLogEntry `json:"entry"`
			ShareByDefault bool                 `json:"share_by_default"`
			SharedFields   []string             `json:"shared_fields"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Entry.RelatedLogs) != 0 {
			t.Errorf("related_logs: got %d, want 0", len(resp.Entry.RelatedLogs))
		}
		if resp.ShareByDefault {
			t.Error("empty applied_to must not share by default")
		}
		if len(resp.SharedFields) != 0 {
			t.Errorf("shared fields: got %v, want empty", resp.SharedFields)
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		rec := apply(testutil.UserFor(u2.ID, u2.FullName, u2.LoginID), main.ID,
			`{"applied_to":["`+u3.ID.Hex()+`"]}`)
		rec.AssertStatus(t, http.StatusForbidden)
	})

	t.Run("attendant entry is not a group source", func(t *testing.T) {
		rec := apply(testutil.UserFor(u2.ID, u2.FullName, u2.LoginID), existing.ID,
			`{"applied_to":["`+u3.ID.Hex()+`"]}`)
		rec.AssertStatus(t, http.StatusBadRequest)
	})

	t.Run("missing entry is not found", func(t *testing.T) {
		rec := apply(asOwner, primitive.NewObjectID(), `{"applied_to":[]}`)
		rec.AssertStatus(t, http.StatusNotFound)
	})
}
