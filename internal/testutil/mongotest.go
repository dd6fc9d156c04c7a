package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/teamplan/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SetupTestDB connects to the test MongoDB instance (MONGO_TEST_URI,
// default mongodb://localhost:27017) and returns a uniquely named database
// that is dropped on cleanup. Tests that need Mongo are skipped when no
// instance is reachable, so the unit-test suite stays runnable anywhere.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("skipping: cannot connect to test MongoDB at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("skipping: test MongoDB at %s not reachable: %v", uri, err)
	}

	db := client.Database(fmt.Sprintf("teamplan_test_%d", time.Now().UnixNano()))

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("failed to ensure indexes on test db: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("failed to drop test db %s: %v", db.Name(), err)
		}
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a timeout suitable for one test's
// store calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
