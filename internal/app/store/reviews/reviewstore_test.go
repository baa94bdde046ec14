package reviewstore_test

import (
	"errors"
	"testing"

	reviewstore "github.com/voyagehq/voyagehub/internal/app/store/reviews"
	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	"github.com/voyagehq/voyagehub/internal/app/system/indexes"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"github.com/voyagehq/voyagehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	dest := fixtures.CreateDestination(ctx, "Kyoto", "Japan")

	created, err := store.Create(ctx, models.Review{
		DestinationID: dest.ID,
		AuthorID:      author.ID,
		Rating:        5,
		Body:          "Unmissable in autumn.",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_OnePerAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	author := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	dest := fixtures.CreateDestination(ctx, "Kyoto", "Japan")
	fixtures.CreateReview(ctx, dest.ID, author.ID, 4, "Great.")

	_, err := store.Create(ctx, models.Review{
		DestinationID: dest.ID,
		AuthorID:      author.ID,
		Rating:        2,
		Body:          "Changed my mind.",
	})
	if !errors.Is(err, reviewstore.ErrAlreadyReviewed) {
		t.Errorf("got %v, want ErrAlreadyReviewed", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	other := fixtures.CreateTraveler(ctx, "Ben", "ben@example.com")
	dest := fixtures.CreateDestination(ctx, "Kyoto", "Japan")
	r := fixtures.CreateReview(ctx, dest.ID, author.ID, 4, "Great.")

	err := store.Delete(ctx, r.ID, other.ID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}

	if err := store.Delete(ctx, r.ID, author.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	err = store.Delete(ctx, r.ID, author.ID)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_ListAndAverage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reviewstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	dest := fixtures.CreateDestination(ctx, "Kyoto", "Japan")
	other := fixtures.CreateDestination(ctx, "Lisbon", "Portugal")

	a := fixtures.CreateTraveler(ctx, "Ana", "ana@example.com")
	b := fixtures.CreateTraveler(ctx, "Ben", "ben@example.com")
	c := fixtures.CreateTraveler(ctx, "Cora", "cora@example.com")
	fixtures.CreateReview(ctx, dest.ID, a.ID, 5, "Loved it.")
	fixtures.CreateReview(ctx, dest.ID, b.ID, 3, "Crowded.")
	fixtures.CreateReview(ctx, other.ID, c.ID, 1, "Wrong city for me.")

	got, err := store.ListByDestination(ctx, dest.ID, 1, 20)
	if err != nil {
		t.Fatalf("ListByDestination failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("reviews: got %d, want 2", len(got))
	}

	avg, count, err := store.AverageRating(ctx, dest.ID)
	if err != nil {
		t.Fatalf("AverageRating failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count: got %d, want 2", count)
	}
	if avg != 4 {
		t.Errorf("avg: got %v, want 4", avg)
	}

	avg, count, err = store.AverageRating(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("AverageRating (empty) failed: %v", err)
	}
	if avg != 0 || count != 0 {
		t.Errorf("empty destination: got avg=%v count=%d, want zeros", avg, count)
	}
}
