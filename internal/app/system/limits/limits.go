// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxAdminBodySize bounds JSON bodies posted to the admin API.
	MaxAdminBodySize = 1 << 20 // 1 MB
)
