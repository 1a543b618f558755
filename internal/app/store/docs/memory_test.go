package docs

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestMemory_ReadsAreCopies(t *testing.T) {
	ctx := testCtx(t)
	m := NewMemory()
	m.Put("teams", "T1", map[string]any{"coach": map[string]any{"email": "a@x.com"}})

	d, err := m.Get(ctx, "teams", "T1")
	if err != nil {
		t.Fatal(err)
	}
	Map(d.Fields, "coach")["email"] = "mutated@x.com"

	d2, _ := m.Get(ctx, "teams", "T1")
	if got := String(d2.Fields, "coach.email"); got != "a@x.com" {
		t.Errorf("stored doc mutated through read: %q", got)
	}
}

func TestMemory_MissingCollectionIsEmpty(t *testing.T) {
	ctx := testCtx(t)
	m := NewMemory()

	all, err := m.All(ctx, "nothing")
	if err != nil || len(all) != 0 {
		t.Errorf("All = %v, %v; want empty, nil", all, err)
	}
	if _, err := m.Get(ctx, "nothing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get err = %v, want ErrNotFound", err)
	}
}

func TestMemory_AllKeepsInsertOrder(t *testing.T) {
	ctx := testCtx(t)
	m := NewMemory()
	for _, id := range []string{"c", "a", "b"} {
		m.Put("users", id, map[string]any{"email": id + "@x.com"})
	}
	m.Put("users", "a", map[string]any{"email": "again@x.com"})

	all, _ := m.All(ctx, "users")
	var ids []string
	for _, d := range all {
		ids = append(ids, d.ID)
	}
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Errorf("order = %v, want [c a b]", ids)
	}
}

func TestMemory_FindEq(t *testing.T) {
	ctx := testCtx(t)
	m := NewMemory()
	m.Put("statistics", "s1", map[string]any{"playerId": "P1", "goals": int64(3)})
	m.Put("statistics", "s2", map[string]any{"playerId": "P2", "goals": 3})
	m.Put("teams", "T1", map[string]any{"coach": map[string]any{"id": "C1"}})

	tests := []struct {
		name  string
		coll  string
		field string
		value any
		want  int
	}{
		{"string", "statistics", "playerId", "P1", 1},
		{"numeric types match", "statistics", "goals", 3, 2},
		{"dotted path", "teams", "coach.id", "C1", 1},
		{"no match", "statistics", "playerId", "P9", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FindEq(ctx, tt.coll, tt.field, tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("FindEq = %d docs, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMemory_CommitAppliesBatch(t *testing.T) {
	ctx := testCtx(t)
	m := NewMemory()
	m.Put("teams", "T1", map[string]any{"name": "Lions", "coach": map[string]any{"email": "a@x.com", "name": "Ana"}})

	b := NewBatch()
	b.Set("teams", "T1", map[string]any{"coach.email": "b@x.com"})
	b.Create("accountChanges", "c1", map[string]any{"accountId": "C1"})
	if err := m.Commit(ctx, b); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	d, _ := m.Get(ctx, "teams", "T1")
	if String(d.Fields, "coach.email") != "b@x.com" || String(d.Fields, "coach.name") != "Ana" {
		t.Errorf("dotted set lost siblings: %v", d.Fields)
	}
	if _, err := m.Get(ctx, "accountChanges", "c1"); err != nil {
		t.Errorf("created doc missing: %v", err)
	}
	if m.Commits() != 1 {
		t.Errorf("Commits = %d", m.Commits())
	}
}

func TestMemory_CommitIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name  string
		batch func() *Batch
	}{
		{"set on missing doc", func() *Batch {
			b := NewBatch()
			b.Set("users", "U1", map[string]any{"email": "new@x.com"})
			b.Set("users", "missing", map[string]any{"email": "new@x.com"})
			return b
		}},
		{"create over existing doc", func() *Batch {
			b := NewBatch()
			b.Set("users", "U1", map[string]any{"email": "new@x.com"})
			b.Create("users", "U1", map[string]any{"email": "dup@x.com"})
			return b
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testCtx(t)
			m := NewMemory()
			m.Put("users", "U1", map[string]any{"email": "old@x.com"})

			if err := m.Commit(ctx, tt.batch()); err == nil {
				t.Fatal("expected commit error")
			}
			d, _ := m.Get(ctx, "users", "U1")
			if got := String(d.Fields, "email"); got != "old@x.com" {
				t.Errorf("partial write applied: email = %q", got)
			}
			if m.Commits() != 0 {
				t.Errorf("Commits = %d, want 0", m.Commits())
			}
		})
	}
}

func TestMemory_FailureInjection(t *testing.T) {
	ctx := testCtx(t)
	m := NewMemory()
	m.Put("users", "U1", map[string]any{"email": "old@x.com"})

	boom := errors.New("unavailable")
	m.FailNextCommit(boom)
	b := NewBatch()
	b.Set("users", "U1", map[string]any{"email": "new@x.com"})
	if err := m.Commit(ctx, b); !errors.Is(err, boom) {
		t.Fatalf("Commit err = %v, want injected error", err)
	}
	if err := m.Commit(ctx, b); err != nil {
		t.Fatalf("second Commit should succeed: %v", err)
	}

	m.FailLoad("users", boom)
	if _, err := m.All(ctx, "users"); !errors.Is(err, boom) {
		t.Errorf("All err = %v", err)
	}
	if _, err := m.Get(ctx, "users", "U1"); !errors.Is(err, boom) {
		t.Errorf("Get err = %v", err)
	}
	m.FailLoad("users", nil)
	if _, err := m.All(ctx, "users"); err != nil {
		t.Errorf("cleared load failure still returned %v", err)
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMemory()

	if _, err := m.All(ctx, "users"); !errors.Is(err, context.Canceled) {
		t.Errorf("All err = %v", err)
	}
	if err := m.Commit(ctx, NewBatch()); !errors.Is(err, context.Canceled) {
		t.Errorf("Commit err = %v", err)
	}
	if err := m.Ping(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Ping err = %v", err)
	}
}
