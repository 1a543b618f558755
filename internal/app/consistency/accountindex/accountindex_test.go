package accountindex

import (
	"errors"
	"testing"

	"github.com/dalemusser/leaguehub/internal/domain/models"
	"github.com/dalemusser/leaguehub/internal/testutil"
	"go.uber.org/zap"
)

func TestBuild_GroupsByNormalizedEmail(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t)
	fx.Put(models.CollPlayerAccounts, "a", map[string]any{"email": "X@Y.com", "firstName": "Ali"})
	fx.Put(models.CollUsers, "b", map[string]any{"email": " x@y.com ", "fullName": "Ali Ben"})

	idx, err := Build(ctx, fx.Store(), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := idx.Emails(); len(got) != 1 || got[0] != "x@y.com" {
		t.Fatalf("Emails() = %v, want [x@y.com]", got)
	}
	entries := idx.Lookup("X@Y.COM")
	if len(entries) != 2 {
		t.Fatalf("Lookup returned %d entries, want 2", len(entries))
	}
	if entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("entries out of collection order: %+v", entries)
	}
}

func TestBuild_SkipsMissingEmail(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t)
	fx.Put(models.CollPlayerAccounts, "p1", map[string]any{"email": "a@x.com"})
	fx.Put(models.CollPlayerAccounts, "p2", map[string]any{"firstName": "No", "lastName": "Email"})
	fx.Put(models.CollCoachAccounts, "c1", map[string]any{"email": "   "})

	idx, err := Build(ctx, fx.Store(), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.MissingEmail != 2 {
		t.Errorf("MissingEmail = %d, want 2", idx.MissingEmail)
	}
	if n := len(idx.Entries()); n != 1 {
		t.Errorf("Entries() = %d, want 1", n)
	}
	if c := idx.Counts()[models.CollPlayerAccounts]; c != 2 {
		t.Errorf("Counts()[playerAccounts] = %d, want 2", c)
	}
}

func TestBuild_LoadFailureDegradesToEmpty(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t)
	fx.Put(models.CollPlayerAccounts, "p1", map[string]any{"email": "a@x.com"})
	fx.Put(models.CollUsers, "u1", map[string]any{"email": "b@x.com"})
	fx.Store().FailLoad(models.CollUsers, errors.New("permission denied"))

	idx, err := Build(ctx, fx.Store(), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("Build should not fail on a collection error: %v", err)
	}
	if _, ok := idx.LoadErrors[models.CollUsers]; !ok {
		t.Error("expected users load error to be recorded")
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestBuild_MissingCollectionIsEmpty(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t)

	idx, err := Build(ctx, fx.Store(), nil, []string{"nope"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Len() != 0 || len(idx.LoadErrors) != 0 {
		t.Errorf("expected empty index without errors, got len=%d errs=%v", idx.Len(), idx.LoadErrors)
	}
}

func TestEntries_CollectionThenLoadOrder(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t)
	fx.Put(models.CollCoachAccounts, "c1", map[string]any{"email": "a@x.com"})
	fx.Put(models.CollPlayerAccounts, "p2", map[string]any{"email": "z@x.com"})
	fx.Put(models.CollPlayerAccounts, "p1", map[string]any{"email": "b@x.com"})

	idx, err := Build(ctx, fx.Store(), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var ids []string
	for _, e := range idx.Entries() {
		ids = append(ids, e.ID)
	}
	want := []string{"p2", "p1", "c1"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestNameOf(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string
	}{
		{"first and last", map[string]any{"firstName": " Ali ", "lastName": "Ben", "fullName": "X"}, "Ali Ben"},
		{"first only", map[string]any{"firstName": "Ali"}, "Ali"},
		{"full name", map[string]any{"fullName": "Karim  Demetri"}, "Karim Demetri"},
		{"name", map[string]any{"name": "Coach K"}, "Coach K"},
		{"display name", map[string]any{"displayName": "Sam"}, "Sam"},
		{"none", map[string]any{"email": "a@x.com"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameOf(tt.fields); got != tt.want {
				t.Errorf("NameOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
