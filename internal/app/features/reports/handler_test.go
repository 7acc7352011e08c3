package reports_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/triplog/internal/app/features/reports"
	"github.com/dalemusser/triplog/internal/domain/models"
	"github.com/dalemusser/triplog/internal/testutil"
	"go.uber.org/zap"
)

func TestServeUnfiltered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	mate := f.CreateUser(ctx, "Mate", "mate@example.com")
	outsider := f.CreateUser(ctx, "Outsider", "out@example.com")
	trip := f.CreateTrip(ctx, "Report Trip", owner.ID)
	f.AddAttendant(ctx, trip.ID, mate.ID)

	early := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)
	f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemTravel, early, true)
	f.CreateLogEntry(ctx, trip.ID, mate.ID, models.ItemTravel, early, false)
	f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemWorktime, late, false)

	h := reports.NewHandler(db, zap.NewNop())
	asOwner := testutil.UserFor(owner.ID, owner.FullName, owner.LoginID)

	fetch := func(target string, user testutil.TestUser) *testutil.ResponseRecorder {
		req := testutil.NewAuthenticatedRequest(http.MethodGet, target, "", user)
		rec := testutil.NewRecorder()
		h.ServeUnfiltered(rec.ResponseRecorder, req)
		return rec
	}

	t.Run("missing tripId is a validation error", func(t *testing.T) {
		rec := fetch("/reports/unfiltered", asOwner)
		rec.AssertStatus(t, http.StatusBadRequest)
		rec.AssertContains(t, "tripId is required")
	})

	t.Run("non-attendant is forbidden", func(t *testing.T) {
		rec := fetch("/reports/unfiltered?tripId="+trip.ID.Hex(),
			testutil.UserFor(outsider.ID, outsider.FullName, outsider.LoginID))
		rec.AssertStatus(t, http.StatusForbidden)
	})

	t.Run("returns all entries newest first", func(t *testing.T) {
		rec := fetch("/reports/unfiltered?tripId="+trip.ID.Hex(), asOwner)
		rec.AssertStatus(t, http.StatusOK)

		var resp struct {
			Trip    models.Trip            `json:"trip"`
			Entries []models.DailyLogEntry `json:"entries"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Entries) != 3 {
			t.Fatalf("entries: got %d, want 3", len(resp.Entries))
		}
		for i := 1; i < len(resp.Entries); i++ {
			if resp.Entries[i].DateTime.After(resp.Entries[i-1].DateTime) {
				t.Errorf("entries not sorted newest first at index %d", i)
			}
		}
	})

	t.Run("user and day filters narrow the report", func(t *testing.T) {
		rec := fetch("/reports/unfiltered?tripId="+trip.ID.Hex()+
			"&userId="+mate.ID.Hex()+"&date=2026-06-01", asOwner)
		rec.AssertStatus(t, http.StatusOK)

		var resp struct {
			Entries []models.DailyLogEntry `json:"entries"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Entries) != 1 || resp.Entries[0].UserID != mate.ID {
			t.Errorf("expected exactly mate's entry on 2026-06-01, got %+v", resp.Entries)
		}
	})
}

func TestServeExport_CSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	trip := f.CreateTrip(ctx, "Export Trip", owner.ID)
	at := time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)
	entry := f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemAccommodation, at, false)

	h := reports.NewHandler(db, zap.NewNop())
	req := testutil.NewAuthenticatedRequest(http.MethodGet,
		"/reports/export?tripId="+trip.ID.Hex()+"&format=csv", "",
		testutil.UserFor(owner.ID, owner.FullName, owner.LoginID))
	rec := testutil.NewRecorder()

	h.ServeExport(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type: got %q, want text/csv", ct)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want header + 1 entry", len(rows))
	}
	if rows[0][0] != "entry_id" {
		t.Errorf("header: got %v", rows[0])
	}
	if rows[1][0] != entry.ID.Hex() {
		t.Errorf("entry_id: got %q, want %q", rows[1][0], entry.ID.Hex())
	}
	if rows[1][2] != "Export Trip" {
		t.Errorf("trip_title: got %q", rows[1][2])
	}
	if rows[1][5] != models.ItemAccommodation {
		t.Errorf("item_type: got %q", rows[1][5])
	}
}

func TestServeExport_DefaultJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateUser(ctx, "Owner", "owner@example.com")
	trip := f.CreateTrip(ctx, "JSON Export Trip", owner.ID)
	f.CreateLogEntry(ctx, trip.ID, owner.ID, models.ItemTravel,
		time.Date(2026, 6, 4, 9, 0, 0, 0, time.UTC), false)

	h := reports.NewHandler(db, zap.NewNop())
	req := testutil.NewAuthenticatedRequest(http.MethodGet,
		"/reports/export?tripId="+trip.ID.Hex(), "",
		testutil.UserFor(owner.ID, owner.FullName, owner.LoginID))
	rec := testutil.NewRecorder()

	h.ServeExport(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Entries []models.DailyLogEntry `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Errorf("entries: got %d, want 1", len(resp.Entries))
	}
}
