package duplicates

import "github.com/go-chi/chi/v5"

// Routes returns the detection subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeDetect) // mounted under /api/admin/detect-duplicates
	return r
}
