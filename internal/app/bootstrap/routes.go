// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/consistency/propagate"
	accountsfeature "github.com/dalemusser/leaguehub/internal/app/features/accounts"
	auditlogfeature "github.com/dalemusser/leaguehub/internal/app/features/auditlog"
	backupfeature "github.com/dalemusser/leaguehub/internal/app/features/backup"
	duplicatesfeature "github.com/dalemusser/leaguehub/internal/app/features/duplicates"
	healthfeature "github.com/dalemusser/leaguehub/internal/app/features/health"
	"github.com/dalemusser/leaguehub/internal/app/store/audit"
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/auditlog"
	"github.com/dalemusser/leaguehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	return newRouter(appCfg, deps.Store, logger), nil
}

// newRouter mounts the health check and the admin API over store.
func newRouter(appCfg AppConfig, store docs.Store, logger *zap.Logger) chi.Router {
	auditStore := audit.New(store)
	auditLog := auditlog.New(auditStore, logger, auditlog.Config{Admin: appCfg.AuditLogAdmin})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(store, appCfg.StoreBackend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api/admin", func(api chi.Router) {
		c := corslib.New(corslib.Options{
			AllowedOrigins:   appCfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
			AllowCredentials: false,
		})
		api.Use(c.Handler)
		if appCfg.AdminRateLimit > 0 {
			api.Use(ratelimit.Middleware(ratelimit.New(appCfg.AdminRateLimit, time.Minute), logger))
		}

		dupHandler := duplicatesfeature.NewHandler(store, auditLog, logger)
		api.Mount("/detect-duplicates", duplicatesfeature.Routes(dupHandler))

		prop := propagate.New(store, logger, appCfg.DefaultPhoneRegion)
		accountsHandler := accountsfeature.NewHandler(prop, auditLog, logger)
		api.Mount("/update-account", accountsfeature.Routes(accountsHandler))

		backupHandler := backupfeature.NewHandler(store, appCfg.BackupCollections, auditLog, logger)
		api.Mount("/backup", backupfeature.Routes(backupHandler))

		auditHandler := auditlogfeature.NewHandler(auditStore, logger)
		api.Mount("/audit-logs", auditlogfeature.Routes(auditHandler))
	})

	return r
}
