package accounts

import "github.com/go-chi/chi/v5"

// Routes returns the account update subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeUpdate) // mounted under /api/admin/update-account
	return r
}
