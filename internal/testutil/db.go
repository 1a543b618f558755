package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoURIEnv names the variable that enables Mongo-backed tests.
const MongoURIEnv = "LEAGUEHUB_TEST_MONGO_URI"

// TestContext returns a context with a reasonable timeout for tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB connects to the Mongo server named by LEAGUEHUB_TEST_MONGO_URI
// and returns a throwaway database that is dropped when the test ends.
// The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := strings.TrimSpace(os.Getenv(MongoURIEnv))
	if uri == "" {
		t.Skipf("%s not set; skipping Mongo-backed test", MongoURIEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Fatalf("ping test mongo: %v", err)
	}

	name := "leaguehub_test_" + uuid.NewString()[:8]
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// SetupMongoStore wraps SetupTestDB in the Mongo document store. Test
// servers are usually standalone, so transactions are not required.
func SetupMongoStore(t *testing.T) *docs.Mongo {
	t.Helper()
	return docs.NewMongo(SetupTestDB(t), zap.NewNop(), false)
}
