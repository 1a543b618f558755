// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for LeagueHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, store_backend, etc.
//   - Environment variables: LEAGUEHUB_MONGO_URI, LEAGUEHUB_STORE_BACKEND, etc.
//   - Command-line flags: --mongo_uri, --store_backend, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: docs.BackendMongo, Desc: "Document store backend: 'mongo' or 'firestore'"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "leaguehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_require_transactions", Default: true, Desc: "Refuse multi-write batches when the server does not support transactions (false allows non-atomic commits)"},

	{Name: "firestore_project_id", Default: "", Desc: "Google Cloud project ID for Firestore"},
	{Name: "firestore_database_id", Default: "", Desc: "Firestore database ID (blank means (default))"},

	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated origins allowed to call the admin API"},
	{Name: "backup_collections", Default: strings.Join(models.DefaultBackupCollections, ","), Desc: "Comma-separated collections exported by default"},

	{Name: "admin_rate_limit", Default: 0, Desc: "Admin API requests per minute per client IP (0 disables)"},

	// Audit logging settings
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "default_phone_region", Default: "US", Desc: "Region for phone numbers without a country code"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, LEAGUEHUB_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LEAGUEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend: strings.ToLower(strings.TrimSpace(appValues.String("store_backend"))),

		MongoURI:                 appValues.String("mongo_uri"),
		MongoDatabase:            appValues.String("mongo_database"),
		MongoMaxPoolSize:         uint64(appValues.Int("mongo_max_pool_size")),
		MongoRequireTransactions: appValues.Bool("mongo_require_transactions"),

		FirestoreProjectID:  appValues.String("firestore_project_id"),
		FirestoreDatabaseID: appValues.String("firestore_database_id"),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		BackupCollections:  splitList(appValues.String("backup_collections")),

		AdminRateLimit: appValues.Int("admin_rate_limit"),
		AuditLogAdmin:  appValues.String("audit_log_admin"),

		DefaultPhoneRegion: strings.ToUpper(strings.TrimSpace(appValues.String("default_phone_region"))),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreBackend {
	case docs.BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database must be set")
		}
	case docs.BackendFirestore:
		if appCfg.FirestoreProjectID == "" {
			return fmt.Errorf("store_backend firestore requires firestore_project_id")
		}
	default:
		return fmt.Errorf("unknown store_backend %q (want mongo or firestore)", appCfg.StoreBackend)
	}

	if len(appCfg.BackupCollections) == 0 {
		return fmt.Errorf("backup_collections must name at least one collection")
	}

	if appCfg.AdminRateLimit < 0 {
		return fmt.Errorf("admin_rate_limit must not be negative")
	}

	switch appCfg.AuditLogAdmin {
	case "", "all", "db", "log", "off":
	default:
		return fmt.Errorf("audit_log_admin must be one of all, db, log, off (got %q)", appCfg.AuditLogAdmin)
	}

	if appCfg.DefaultPhoneRegion != "" && phonenumbers.GetCountryCodeForRegion(appCfg.DefaultPhoneRegion) == 0 {
		return fmt.Errorf("unknown default_phone_region %q", appCfg.DefaultPhoneRegion)
	}

	return nil
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
