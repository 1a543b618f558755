package accounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/leaguehub/internal/app/consistency/propagate"
	"github.com/dalemusser/leaguehub/internal/app/system/auditlog"
	"github.com/dalemusser/leaguehub/internal/app/system/inputval"
	"github.com/dalemusser/leaguehub/internal/app/system/respond"
	"github.com/dalemusser/leaguehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves account updates.
type Handler struct {
	Propagator *propagate.Propagator
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs an accounts Handler.
func NewHandler(p *propagate.Propagator, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Propagator: p, Audit: audit, Log: logger}
}

// ServeUpdate handles POST /api/admin/update-account.
//
// 400 when accountId, accountType or updates are missing or invalid;
// 500 with the raw error when the fan-out commit fails.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	var req propagate.Request
	if err := inputval.DecodeJSON(r, &req); err != nil {
		writeClientError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Propagator.Update(ctx, req)
	if err != nil {
		var verr *inputval.Error
		if errors.As(err, &verr) {
			writeClientError(w, err)
			return
		}
		h.Log.Error("update-account failed",
			zap.String("account_id", req.AccountID),
			zap.Error(err))
		h.Audit.AccountUpdated(ctx, r, req.AccountID, req.AccountType, nil, false, err)
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if sum := res.EmailSyncSummary; sum != nil {
		h.Audit.EmailSynced(ctx, r, req.AccountID, sum.OldEmail, sum.NewEmail, sum.Total, nil)
	}
	h.Audit.AccountUpdated(ctx, r, req.AccountID, req.AccountType, res.UpdatedCollections, res.EmailSynced, nil)
	respond.JSON(w, http.StatusOK, res)
}

func writeClientError(w http.ResponseWriter, err error) {
	var verr *inputval.Error
	if errors.As(err, &verr) {
		respond.FieldError(w, http.StatusBadRequest, verr.Message, verr.Fields)
		return
	}
	respond.Error(w, http.StatusBadRequest, err.Error())
}
