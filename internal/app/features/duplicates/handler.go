package duplicates

import (
	"context"
	"net/http"

	"github.com/dalemusser/leaguehub/internal/app/consistency/duplicates"
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/auditlog"
	"github.com/dalemusser/leaguehub/internal/app/system/respond"
	"github.com/dalemusser/leaguehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the duplicate scan.
type Handler struct {
	Store docs.Reader
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a duplicates Handler.
func NewHandler(store docs.Reader, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Audit: audit, Log: logger}
}

// ServeDetect handles GET /api/admin/detect-duplicates.
func (h *Handler) ServeDetect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	d := &duplicates.Detector{Store: h.Store, Log: h.Log}
	rep, err := d.Run(ctx)
	if err != nil {
		h.Log.Error("detect-duplicates failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Audit.DuplicatesScanned(ctx, r, rep.Summary.TotalAccounts, rep.DuplicatesCount)
	respond.JSON(w, http.StatusOK, rep)
}
