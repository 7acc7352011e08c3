package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/triplog/internal/app/store/users"
	"github.com/dalemusser/triplog/internal/testutil"
)

func TestUpsertGoogleUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.UpsertGoogleUser(ctx, "Ada Example", "Ada@Example.com")
	if err != nil {
		t.Fatalf("UpsertGoogleUser (insert): %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected an id on first login")
	}
	if created.LoginID != "ada@example.com" {
		t.Errorf("login id not normalized: %q", created.LoginID)
	}
	if created.AuthMethod != "google" {
		t.Errorf("auth method: got %q", created.AuthMethod)
	}

	// Second login with a changed display name updates in place.
	updated, err := store.UpsertGoogleUser(ctx, "Ada E. Example", "ada@example.com")
	if err != nil {
		t.Fatalf("UpsertGoogleUser (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("repeat login must not create a second account")
	}
	if updated.FullName != "Ada E. Example" {
		t.Errorf("full name not refreshed: %q", updated.FullName)
	}
}

func TestActiveTrips(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Traveler", "traveler@test.com")
	trip := fixtures.CreateTrip(ctx, "Registered Trip", user.ID)

	if err := store.AddActiveTrip(ctx, user.ID, trip.ID); err != nil {
		t.Fatalf("AddActiveTrip: %v", err)
	}
	// Adding twice keeps the list a set.
	if err := store.AddActiveTrip(ctx, user.ID, trip.ID); err != nil {
		t.Fatalf("AddActiveTrip (repeat): %v", err)
	}

	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.ActiveTrips) != 1 || got.ActiveTrips[0] != trip.ID {
		t.Errorf("active trips: got %v", got.ActiveTrips)
	}

	if err := store.RemoveActiveTrip(ctx, user.ID, trip.ID); err != nil {
		t.Fatalf("RemoveActiveTrip: %v", err)
	}
	got, err = store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.ActiveTrips) != 0 {
		t.Errorf("active trips should be empty, got %v", got.ActiveTrips)
	}
}
