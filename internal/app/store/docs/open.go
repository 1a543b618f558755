package docs

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Backends accepted by Open.
const (
	BackendMongo     = "mongo"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	MongoURI            string
	MongoDatabase       string
	MongoMaxPoolSize    uint64
	RequireTransactions bool
	ConnectTimeout      time.Duration

	FirestoreProjectID  string
	FirestoreDatabaseID string
}

// Conn is an opened backend plus the handles needed to tear it down.
type Conn struct {
	Store       Store
	MongoClient *mongo.Client
	Mongo       *Mongo
	Firestore   *Firestore
}

// Close disconnects whichever client Open created.
func (c *Conn) Close(ctx context.Context) error {
	if c.MongoClient != nil {
		return c.MongoClient.Disconnect(ctx)
	}
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}

// Open connects the configured backend and verifies it with a ping.
func Open(parent context.Context, opts Options, logger *zap.Logger) (*Conn, error) {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	switch opts.Backend {
	case BackendMongo, "":
		clientOpts := options.Client().ApplyURI(opts.MongoURI)
		if opts.MongoMaxPoolSize > 0 {
			clientOpts.SetMaxPoolSize(opts.MongoMaxPoolSize)
		}
		client, err := mongo.Connect(ctx, clientOpts)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		store := NewMongo(client.Database(opts.MongoDatabase), logger, opts.RequireTransactions)
		if err := store.Ping(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("pinging mongo: %w", err)
		}
		logger.Info("connected to MongoDB", zap.String("database", opts.MongoDatabase),
			zap.Bool("require_transactions", opts.RequireTransactions))
		return &Conn{Store: store, MongoClient: client, Mongo: store}, nil

	case BackendFirestore:
		// The client keeps the context it was created with.
		fs, err := NewFirestore(parent, opts.FirestoreProjectID, opts.FirestoreDatabaseID)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to Firestore", zap.String("project", opts.FirestoreProjectID),
			zap.String("database", opts.FirestoreDatabaseID))
		return &Conn{Store: fs, Firestore: fs}, nil

	case BackendMemory:
		logger.Warn("using in-memory document store; data is not persisted")
		return &Conn{Store: NewMemory()}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
