package main

import (
	"fmt"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// envPrefix matches the service so one .env drives both binaries.
const envPrefix = "LEAGUEHUB"

type config struct {
	StoreBackend             string   `envconfig:"STORE_BACKEND" default:"mongo"`
	MongoURI                 string   `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase            string   `envconfig:"MONGO_DATABASE" default:"leaguehub"`
	MongoRequireTransactions bool     `envconfig:"MONGO_REQUIRE_TRANSACTIONS" default:"true"`
	FirestoreProjectID       string   `envconfig:"FIRESTORE_PROJECT_ID"`
	FirestoreDatabaseID      string   `envconfig:"FIRESTORE_DATABASE_ID"`
	BackupCollections        []string `envconfig:"BACKUP_COLLECTIONS"`
	DefaultPhoneRegion       string   `envconfig:"DEFAULT_PHONE_REGION" default:"US"`
	LogLevel                 string   `envconfig:"LOG_LEVEL" default:"warn"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return config{}, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.BackupCollections) == 0 {
		cfg.BackupCollections = models.DefaultBackupCollections
	}
	return cfg, nil
}

func (c config) storeOptions() docs.Options {
	return docs.Options{
		Backend:             c.StoreBackend,
		MongoURI:            c.MongoURI,
		MongoDatabase:       c.MongoDatabase,
		RequireTransactions: c.MongoRequireTransactions,
		FirestoreProjectID:  c.FirestoreProjectID,
		FirestoreDatabaseID: c.FirestoreDatabaseID,
	}
}

// newLogger writes to stderr so command output on stdout stays parseable.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
