// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/audit"
	"github.com/dalemusser/leaguehub/internal/app/system/respond"
	"github.com/dalemusser/leaguehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const pageSize = 50

// ServeList handles GET /api/admin/audit-logs with optional category,
// event_type, account_id, start_date, end_date (YYYY-MM-DD) and page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	eventType := strings.TrimSpace(q.Get("event_type"))
	accountID := strings.TrimSpace(q.Get("account_id"))
	startDate := strings.TrimSpace(q.Get("start_date"))
	endDate := strings.TrimSpace(q.Get("end_date"))

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	filter := audit.QueryFilter{
		AccountID: accountID,
		Category:  category,
		EventType: eventType,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		filter.StartTime = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
		// End of day
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &endOfDay
	}

	events, err := h.Store.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := h.Store.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, toItem(e))
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Items:      items,
		Category:   category,
		EventType:  eventType,
		AccountID:  accountID,
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	})
}
