// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Conn == nil {
		return nil
	}
	logger.Info("closing document store", zap.String("backend", appCfg.StoreBackend))
	if err := deps.Conn.Close(ctx); err != nil {
		logger.Error("document store close failed", zap.Error(err))
		return err
	}
	return nil
}
