package backup

import (
	"context"
	"net/http"

	"github.com/dalemusser/leaguehub/internal/app/consistency/backup"
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/auditlog"
	"github.com/dalemusser/leaguehub/internal/app/system/respond"
	"github.com/dalemusser/leaguehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves collection snapshots.
type Handler struct {
	Store    docs.Reader
	Defaults []string
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a backup Handler. defaults is the collection list
// exported when the request names none.
func NewHandler(store docs.Reader, defaults []string, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Defaults: defaults, Audit: audit, Log: logger}
}

// ServeBackup handles GET /api/admin/backup?collections=a,b.
func (h *Handler) ServeBackup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	collections := backup.ParseCollections(r.URL.Query().Get("collections"), h.Defaults)
	e := &backup.Exporter{Store: h.Store, Log: h.Log}
	snap, err := e.Export(ctx, collections)
	if err != nil {
		h.Audit.BackupExported(ctx, r, collections, 0, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	total := 0
	for _, n := range snap.Counts {
		total += n
	}
	h.Audit.BackupExported(ctx, r, collections, total, nil)
	respond.JSON(w, http.StatusOK, snap)
}
