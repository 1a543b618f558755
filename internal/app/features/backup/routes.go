package backup

import "github.com/go-chi/chi/v5"

// Routes returns the backup subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeBackup) // mounted under /api/admin/backup
	return r
}
