// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (LEAGUEHUB_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// still owns ports, TLS, log level and request limits.
type AppConfig struct {
	// Document store selection: "mongo" or "firestore".
	StoreBackend string

	// MongoDB connection configuration
	MongoURI                 string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase            string // Database name within MongoDB
	MongoMaxPoolSize         uint64
	MongoRequireTransactions bool // fail commits on standalone servers instead of applying them unwrapped

	// Cloud Firestore configuration (only used if StoreBackend is "firestore")
	FirestoreProjectID  string
	FirestoreDatabaseID string // blank means the (default) database

	// Origins allowed to call the admin API from a browser.
	CORSAllowedOrigins []string

	// Collections exported by /api/admin/backup when the request names none.
	BackupCollections []string

	// Requests per minute allowed per client IP on the admin API; 0 disables.
	AdminRateLimit int

	// Audit logging: 'all' (db+log), 'db', 'log', or 'off'
	AuditLogAdmin string

	// Region used to parse phone numbers without a country prefix (e.g., "US").
	DefaultPhoneRegion string
}
