// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/audit"
)

// listItem represents a single audit event row.
type listItem struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"eventType"`
	AccountID     string            `json:"accountId,omitempty"`
	AccountType   string            `json:"accountType,omitempty"`
	IP            string            `json:"ip,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failureReason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// listResponse is the body of GET /api/admin/audit-logs.
type listResponse struct {
	Items []listItem `json:"items"`

	// Filters echoed back
	Category  string `json:"category,omitempty"`
	EventType string `json:"eventType,omitempty"`
	AccountID string `json:"accountId,omitempty"`

	// Filter options
	Categories []string `json:"categories"`
	EventTypes []string `json:"eventTypes"`

	// Pagination
	Page       int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	Total      int  `json:"total"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

func allCategories() []string {
	return []string{audit.CategoryAdmin, audit.CategoryData}
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []string {
	adminEvents := []string{
		audit.EventAccountUpdated,
		audit.EventEmailSynced,
		audit.EventDuplicatesScanned,
	}
	dataEvents := []string{
		audit.EventBackupExported,
	}

	switch category {
	case audit.CategoryAdmin:
		return adminEvents
	case audit.CategoryData:
		return dataEvents
	case "":
		all := make([]string, 0, len(adminEvents)+len(dataEvents))
		all = append(all, adminEvents...)
		all = append(all, dataEvents...)
		return all
	default:
		return []string{}
	}
}

func toItem(e audit.Event) listItem {
	return listItem{
		ID:            e.ID,
		Timestamp:     e.Timestamp,
		Category:      e.Category,
		EventType:     e.EventType,
		AccountID:     e.AccountID,
		AccountType:   e.AccountType,
		IP:            e.IP,
		Success:       e.Success,
		FailureReason: e.FailureReason,
		Details:       e.Details,
	}
}
