package userstore_test

import (
	"errors"
	"testing"

	"github.com/voyagehq/voyagehub/internal/app/system/apperr"
	userstore "github.com/voyagehq/voyagehub/internal/app/store/users"
	"github.com/voyagehq/voyagehub/internal/app/system/indexes"
	"github.com/voyagehq/voyagehub/internal/domain/models"
	"github.com/voyagehq/voyagehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		DisplayName: "  Ana Silva  ",
		Email:       "Ana@Example.COM",
		AuthMethod:  models.AuthMethodPassword,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.DisplayName != "Ana Silva" {
		t.Errorf("display name not trimmed: %q", created.DisplayName)
	}
	if created.Email != "ana@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.EmailCI == "" {
		t.Error("expected EmailCI to be set")
	}
	if created.Role != models.RoleTraveler {
		t.Errorf("default role: got %q, want traveler", created.Role)
	}
	if created.Status != models.StatusActive {
		t.Errorf("default status: got %q, want active", created.Status)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		DisplayName: "Bad Role",
		Email:       "bad@example.com",
		AuthMethod:  models.AuthMethodPassword,
		Role:        "superuser",
	})
	if err == nil {
		t.Error("expected error for invalid role")
	}

	_, err = store.Create(ctx, models.User{
		DisplayName: "Bad Auth",
		Email:       "auth@example.com",
		AuthMethod:  "ldap",
	})
	if err == nil {
		t.Error("expected error for invalid auth method")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The unique index enforces this, so ensure schema first.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, models.User{
		DisplayName: "Ana",
		Email:       "ana@example.com",
		AuthMethod:  models.AuthMethodPassword,
	}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{
		DisplayName: "Ana Again",
		Email:       "ANA@example.com", // differs only by case
		AuthMethod:  models.AuthMethodGoogle,
	})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		DisplayName: "Ana",
		Email:       "ana@example.com",
		AuthMethod:  models.AuthMethodPassword,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "  ANA@Example.com ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got user %v, want %v", got.ID, created.ID)
	}

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_UpdateDisplayName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		DisplayName: "Ana",
		Email:       "ana@example.com",
		AuthMethod:  models.AuthMethodPassword,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.UpdateDisplayName(ctx, created.ID, "  Ana S.  "); err != nil {
		t.Fatalf("UpdateDisplayName failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.DisplayName != "Ana S." {
		t.Errorf("display name: got %q, want %q", got.DisplayName, "Ana S.")
	}

	err = store.UpdateDisplayName(ctx, primitive.NewObjectID(), "Ghost")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		DisplayName: "Ana",
		Email:       "ana@example.com",
		AuthMethod:  models.AuthMethodPassword,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetStatus(ctx, created.ID, "Disabled"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.StatusDisabled {
		t.Errorf("status: got %q, want disabled", got.Status)
	}

	if err := store.SetStatus(ctx, created.ID, "frozen"); err == nil {
		t.Error("expected error for invalid status")
	}
}
