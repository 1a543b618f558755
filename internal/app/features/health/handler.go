package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/leaguehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger is the part of the document store the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Store   Pinger
	Backend string
	Log     *zap.Logger
}

// NewHandler constructs a health Handler with the store and logger.
func NewHandler(store Pinger, backend string, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   store,
		Backend: backend,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "backend":"mongo" }
//
// On store failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		Backend:  h.Backend,
	}

	if err := h.Store.Ping(ctx); err != nil {
		h.Log.Error("health-check: store ping failed", zap.String("backend", h.Backend), zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
