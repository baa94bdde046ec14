// internal/app/bootstrap/startup_test.go
package bootstrap

import (
	"testing"

	"github.com/voyagehq/voyagehub/internal/domain/models"
	"github.com/voyagehq/voyagehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateTraveler(ctx, "Future Admin", "admin@voyagehub.test")

	deps := DBDeps{MongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "admin@voyagehub.test", zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	var promoted models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": u.ID}).Decode(&promoted); err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if promoted.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", promoted.Role, models.RoleAdmin)
	}

	// Running again is a no-op.
	if err := ensureAdmin(ctx, deps, "admin@voyagehub.test", zap.NewNop()); err != nil {
		t.Fatalf("second ensureAdmin failed: %v", err)
	}
}

func TestEnsureAdmin_MissingAccountIsNotFatal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := ensureAdmin(ctx, deps, "nobody@voyagehub.test", zap.NewNop()); err != nil {
		t.Fatalf("ensureAdmin should tolerate a missing account: %v", err)
	}
}
