// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/indexes"
	"github.com/dalemusser/leaguehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB opens the configured document store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	conn, err := docs.Open(ctx, docs.Options{
		Backend:             appCfg.StoreBackend,
		MongoURI:            appCfg.MongoURI,
		MongoDatabase:       appCfg.MongoDatabase,
		MongoMaxPoolSize:    appCfg.MongoMaxPoolSize,
		RequireTransactions: appCfg.MongoRequireTransactions,
		ConnectTimeout:      timeouts.Medium(),
		FirestoreProjectID:  appCfg.FirestoreProjectID,
		FirestoreDatabaseID: appCfg.FirestoreDatabaseID,
	}, logger)
	if err != nil {
		logger.Error("document store connect failed", zap.String("backend", appCfg.StoreBackend), zap.Error(err))
		return DBDeps{}, err
	}

	deps := DBDeps{Conn: conn, Store: conn.Store, MongoClient: conn.MongoClient}
	if conn.MongoClient != nil {
		deps.MongoDatabase = conn.MongoClient.Database(appCfg.MongoDatabase)
	}
	return deps, nil
}

// EnsureSchema creates the lookup indexes. Firestore manages single-field
// indexes itself, so only the mongo backend has work to do.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		logger.Info("skipping index setup", zap.String("backend", appCfg.StoreBackend))
		return nil
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	return nil
}
