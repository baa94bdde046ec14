// internal/app/features/itineraries/handler_test.go
package itineraries

import (
	"net/http"
	"testing"

	"github.com/voyagehq/voyagehub/internal/domain/models"
	"github.com/voyagehq/voyagehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleCreate(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	kyoto := f.CreateDestination(ctx, "Kyoto", "Japan")
	osaka := f.CreateDestination(ctx, "Osaka", "Japan")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/itineraries", map[string]any{
		"title":     "Kansai in a week",
		"is_public": true,
		"days": []map[string]any{
			{"day_number": 1, "destination_id": kyoto.ID.Hex(), "activities": "Fushimi Inari at dawn"},
			{"day_number": 2, "destination_id": osaka.ID.Hex(), "activities": "Dotonbori food crawl"},
		},
	})
	req = testutil.WithUser(req, testutil.UserWithID(owner.ID))
	rec := testutil.NewRecorder()

	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var it models.Itinerary
	rec.DecodeJSON(t, &it)
	if it.OwnerID != owner.ID {
		t.Errorf("owner_id: got %s", it.OwnerID.Hex())
	}
	if len(it.Days) != 2 || it.Days[1].DestinationID != osaka.ID {
		t.Errorf("days not preserved: %+v", it.Days)
	}
}

func TestHandleCreate_DayValidation(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	kyoto := f.CreateDestination(ctx, "Kyoto", "Japan")

	cases := []struct {
		name string
		days []map[string]any
	}{
		{"out of order", []map[string]any{
			{"day_number": 2, "destination_id": kyoto.ID.Hex()},
		}},
		{"unknown destination", []map[string]any{
			{"day_number": 1, "destination_id": "ffffffffffffffffffffffff"},
		}},
		{"malformed destination", []map[string]any{
			{"day_number": 1, "destination_id": "nope"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/itineraries",
				map[string]any{"title": "Broken plan", "days": tc.days})
			req = testutil.WithUser(req, testutil.UserWithID(owner.ID))
			rec := testutil.NewRecorder()

			h.HandleCreate(rec, req)
			rec.AssertStatus(t, http.StatusUnprocessableEntity)
		})
	}
}

func TestServeDetail_Visibility(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	private := f.CreateItinerary(ctx, owner.ID, "Secret escape", false)
	public := f.CreateItinerary(ctx, owner.ID, "Shared plan", true)

	// Strangers get 404 on a private plan.
	req := testutil.NewRequest(http.MethodGet, "/itineraries/"+private.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", private.ID.Hex())
	req = testutil.WithUser(req, testutil.TravelerUser())
	rec := testutil.NewRecorder()

	h.ServeDetail(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	// The owner sees it.
	req = testutil.NewRequest(http.MethodGet, "/itineraries/"+private.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", private.ID.Hex())
	req = testutil.WithUser(req, testutil.UserWithID(owner.ID))
	rec = testutil.NewRecorder()

	h.ServeDetail(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	// Public plans are open to anyone, signed out included.
	req = testutil.NewRequest(http.MethodGet, "/itineraries/"+public.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", public.ID.Hex())
	rec = testutil.NewRecorder()

	h.ServeDetail(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestServeMineAndPublic(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	other := f.CreateTraveler(ctx, "Sam Stranger", "sam@example.com")
	f.CreateItinerary(ctx, owner.ID, "Secret escape", false)
	f.CreateItinerary(ctx, owner.ID, "Shared plan", true)
	f.CreateItinerary(ctx, other.ID, "Sam's trip", true)

	req := testutil.NewRequest(http.MethodGet, "/itineraries/mine")
	req = testutil.WithUser(req, testutil.UserWithID(owner.ID))
	rec := testutil.NewRecorder()

	h.ServeMine(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var mine itineraryListResponse
	rec.DecodeJSON(t, &mine)
	if len(mine.Itineraries) != 2 {
		t.Errorf("mine: got %d, want 2", len(mine.Itineraries))
	}

	req = testutil.NewRequest(http.MethodGet, "/itineraries")
	rec = testutil.NewRecorder()

	h.ServePublic(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var pub itineraryListResponse
	rec.DecodeJSON(t, &pub)
	if len(pub.Itineraries) != 2 {
		t.Errorf("public: got %d, want 2", len(pub.Itineraries))
	}
	for _, it := range pub.Itineraries {
		if !it.IsPublic {
			t.Errorf("private plan leaked into public listing: %q", it.Title)
		}
	}
}

func TestHandleUpdateAndDelete_OwnerOnly(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := f.CreateTraveler(ctx, "Riley Nomad", "riley@example.com")
	other := f.CreateTraveler(ctx, "Sam Stranger", "sam@example.com")
	it := f.CreateItinerary(ctx, owner.ID, "Draft plan", false)

	// A stranger cannot update it.
	req := testutil.NewJSONRequest(t, http.MethodPut, "/itineraries/"+it.ID.Hex(),
		map[string]any{"title": "Hijacked"})
	req = testutil.WithChiURLParam(req, "id", it.ID.Hex())
	req = testutil.WithUser(req, testutil.UserWithID(other.ID))
	rec := testutil.NewRecorder()

	h.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// The owner can rename and publish it.
	req = testutil.NewJSONRequest(t, http.MethodPut, "/itineraries/"+it.ID.Hex(),
		map[string]any{"title": "Final plan", "is_public": true})
	req = testutil.WithChiURLParam(req, "id", it.ID.Hex())
	req = testutil.WithUser(req, testutil.UserWithID(owner.ID))
	rec = testutil.NewRecorder()

	h.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var updated models.Itinerary
	rec.DecodeJSON(t, &updated)
	if updated.Title != "Final plan" || !updated.IsPublic {
		t.Errorf("update not applied: %+v", updated)
	}

	// A stranger cannot delete it either.
	req = testutil.NewRequest(http.MethodDelete, "/itineraries/"+it.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", it.ID.Hex())
	req = testutil.WithUser(req, testutil.UserWithID(other.ID))
	rec = testutil.NewRecorder()

	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.NewRequest(http.MethodDelete, "/itineraries/"+it.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", it.ID.Hex())
	req = testutil.WithUser(req, testutil.UserWithID(owner.ID))
	rec = testutil.NewRecorder()

	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)
}
