// internal/app/store/audit/store.go
package audit

import (
	"context"
	"sort"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"github.com/google/uuid"
)

// Event categories
const (
	CategoryAdmin = "admin"
	CategoryData  = "data"
)

// Admin event types
const (
	EventAccountUpdated    = "account_updated"
	EventEmailSynced       = "email_synced"
	EventDuplicatesScanned = "duplicates_scanned"
	EventBackupExported    = "backup_exported"
)

// Event represents an audit event.
type Event struct {
	ID        string    `bson:"id"`
	Timestamp time.Time `bson:"timestamp"`

	// Event classification
	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// What
	AccountID   string `bson:"account_id,omitempty"`
	AccountType string `bson:"account_type,omitempty"`

	// Context
	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	// Outcome
	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	// Additional details (varies by event type)
	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	AccountID string
	Category  string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// Store keeps audit events in the auditLogs collection of a document store.
type Store struct {
	s docs.Store
}

// New creates a new audit Store.
func New(s docs.Store) *Store {
	return &Store{s: s}
}

// Log records an audit event in its own commit.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	fields, err := docs.Encode(event)
	if err != nil {
		return err
	}
	b := docs.NewBatch()
	b.Create(models.CollAuditLogs, event.ID, fields)
	return s.s.Commit(ctx, b)
}

// Query returns matching events, most recent first. The audit trail is
// small and admin-only, so it is filtered after a full read.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	events, err := s.matching(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(events) {
			return []Event{}, nil
		}
		events = events[filter.Offset:]
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// CountByFilter returns the number of events matching filter, ignoring
// Limit and Offset.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int, error) {
	events, err := s.matching(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

func (s *Store) matching(ctx context.Context, filter QueryFilter) ([]Event, error) {
	all, err := s.s.All(ctx, models.CollAuditLogs)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(all))
	for _, d := range all {
		var e Event
		if err := docs.Decode(d, &e); err != nil {
			return nil, err
		}
		if filter.matches(e) {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events, nil
}

func (f QueryFilter) matches(e Event) bool {
	if f.AccountID != "" && e.AccountID != f.AccountID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	if f.StartTime != nil && e.Timestamp.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && e.Timestamp.After(*f.EndTime) {
		return false
	}
	return true
}

// GetByAccount returns recent events for an account.
func (s *Store) GetByAccount(ctx context.Context, accountID string, limit int) ([]Event, error) {
	return s.Query(ctx, QueryFilter{AccountID: accountID, Limit: limit})
}
