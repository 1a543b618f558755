package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/audit"
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/testutil"
)

func TestStore_Log(t *testing.T) {
	store := audit.New(docs.NewMemory())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Log(ctx, audit.Event{
		Category:    audit.CategoryAdmin,
		EventType:   audit.EventAccountUpdated,
		AccountID:   "P1",
		AccountType: "player",
		IP:          "192.168.1.1",
		Success:     true,
		Details:     map[string]string{"collections": "playerAccounts,teams"},
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetByAccount(ctx, "P1", 10)
	if err != nil {
		t.Fatalf("GetByAccount failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.ID == "" || e.Timestamp.IsZero() {
		t.Error("expected generated ID and timestamp")
	}
	if e.Details["collections"] != "playerAccounts,teams" {
		t.Errorf("details = %v", e.Details)
	}
}

func TestStore_Query(t *testing.T) {
	store := audit.New(docs.NewMemory())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []audit.Event{
		{Category: audit.CategoryAdmin, EventType: audit.EventAccountUpdated, AccountID: "P1", Timestamp: base},
		{Category: audit.CategoryData, EventType: audit.EventBackupExported, Timestamp: base.Add(time.Hour)},
		{Category: audit.CategoryAdmin, EventType: audit.EventEmailSynced, AccountID: "P1", Timestamp: base.Add(2 * time.Hour)},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter audit.QueryFilter
		want   []string
	}{
		{"all newest first", audit.QueryFilter{}, []string{audit.EventEmailSynced, audit.EventBackupExported, audit.EventAccountUpdated}},
		{"by category", audit.QueryFilter{Category: audit.CategoryData}, []string{audit.EventBackupExported}},
		{"by account", audit.QueryFilter{AccountID: "P1"}, []string{audit.EventEmailSynced, audit.EventAccountUpdated}},
		{"limit", audit.QueryFilter{Limit: 1}, []string{audit.EventEmailSynced}},
		{"offset", audit.QueryFilter{Limit: 1, Offset: 1}, []string{audit.EventBackupExported}},
		{"offset past end", audit.QueryFilter{Offset: 5}, []string{}},
		{"since", audit.QueryFilter{StartTime: ptrTime(base.Add(30 * time.Minute))}, []string{audit.EventEmailSynced, audit.EventBackupExported}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.EventType != tt.want[i] {
					t.Errorf("event %d = %s, want %s", i, e.EventType, tt.want[i])
				}
			}
		})
	}
}

func TestStore_CountByFilter(t *testing.T) {
	store := audit.New(docs.NewMemory())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		if err := store.Log(ctx, audit.Event{Category: audit.CategoryAdmin, EventType: audit.EventDuplicatesScanned}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryAdmin, Limit: 1})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
