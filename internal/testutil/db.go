package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestDBEnvVar names the environment variable holding the Mongo URI for
// integration tests. Tests that need a database skip when it is unset, so
// the pure-function suites still run everywhere.
const TestDBEnvVar = "VOYAGEHUB_TEST_MONGO_URI"

// SetupTestDB connects to the test Mongo instance and returns a database
// scoped to the current test. The database is dropped before the test runs
// and the client is disconnected during cleanup.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(TestDBEnvVar)
	if uri == "" {
		t.Skipf("skipping: %s not set", TestDBEnvVar)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	db := client.Database(testDBName(t))
	if err := db.Drop(ctx); err != nil {
		t.Fatalf("drop test database: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a generous timeout for test database
// operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// testDBName derives a database name from the test name. Mongo database
// names reject a handful of characters that subtests often contain.
func testDBName(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_", ".", "_", "$", "_", "\\", "_", "\"", "_").Replace(t.Name())
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("voyagehub_test_%s", strings.ToLower(name))
}
