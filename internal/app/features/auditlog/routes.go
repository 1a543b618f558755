// internal/app/features/auditlog/routes.go
package auditlog

import "github.com/go-chi/chi/v5"

// Routes mounts the audit log listing under the path where this
// router is mounted (typically "/api/admin/audit-logs" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	return r
}
