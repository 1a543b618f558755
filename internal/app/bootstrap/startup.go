// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/leaguehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		t := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Int("overrides", n),
			zap.Duration("short", t.Short),
			zap.Duration("medium", t.Medium),
			zap.Duration("long", t.Long),
			zap.Duration("batch", t.Batch))
	}
	logger.Info("leaguehub ready",
		zap.String("backend", appCfg.StoreBackend),
		zap.Strings("backup_collections", appCfg.BackupCollections),
		zap.String("phone_region", appCfg.DefaultPhoneRegion))
	return nil
}
