// internal/app/features/favorites/handler_test.go
package favorites

import (
	"net/http"
	"testing"

	"github.com/voyagehq/voyagehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestSaveListRemove(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	d := f.CreateDestination(ctx, "Kyoto", "Japan")

	save := func() *testutil.ResponseRecorder {
		req := testutil.NewRequest(http.MethodPut, "/favorites/destinations/"+d.ID.Hex())
		req = testutil.WithChiURLParam(req, "id", d.ID.Hex())
		req = testutil.WithUser(req, testutil.UserWithID(u.ID))
		rec := testutil.NewRecorder()
		h.HandleSave(rec, req)
		return rec
	}

	save().AssertStatus(t, http.StatusNoContent)
	// Saving again is idempotent, not a conflict.
	save().AssertStatus(t, http.StatusNoContent)

	req := testutil.NewRequest(http.MethodGet, "/favorites")
	req = testutil.WithUser(req, testutil.UserWithID(u.ID))
	rec := testutil.NewRecorder()

	h.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var resp favoritesResponse
	rec.DecodeJSON(t, &resp)
	if len(resp.Favorites) != 1 {
		t.Fatalf("favorites: got %d, want 1", len(resp.Favorites))
	}
	row := resp.Favorites[0]
	if row.DestinationID != d.ID {
		t.Errorf("destination_id: got %s", row.DestinationID.Hex())
	}
	if row.Destination == nil || row.Destination.Name != "Kyoto" {
		t.Errorf("expected joined destination reference, got %+v", row.Destination)
	}

	req = testutil.NewRequest(http.MethodDelete, "/favorites/destinations/"+d.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", d.ID.Hex())
	req = testutil.WithUser(req, testutil.UserWithID(u.ID))
	rec = testutil.NewRecorder()

	h.HandleRemove(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)

	req = testutil.NewRequest(http.MethodGet, "/favorites")
	req = testutil.WithUser(req, testutil.UserWithID(u.ID))
	rec = testutil.NewRecorder()

	h.ServeList(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &resp)
	if len(resp.Favorites) != 0 {
		t.Errorf("favorites after removal: got %d, want 0", len(resp.Favorites))
	}
}

func TestHandleSave_UnknownDestination(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	missing := "ffffffffffffffffffffffff"

	req := testutil.NewRequest(http.MethodPut, "/favorites/destinations/"+missing)
	req = testutil.WithChiURLParam(req, "id", missing)
	req = testutil.WithUser(req, testutil.UserWithID(u.ID))
	rec := testutil.NewRecorder()

	h.HandleSave(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleRemove_NeverSaved(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	d := f.CreateDestination(ctx, "Kyoto", "Japan")

	req := testutil.NewRequest(http.MethodDelete, "/favorites/destinations/"+d.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", d.ID.Hex())
	req = testutil.WithUser(req, testutil.UserWithID(u.ID))
	rec := testutil.NewRecorder()

	h.HandleRemove(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)
}
