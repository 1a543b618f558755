package duplicates

import (
	"errors"
	"testing"

	"github.com/dalemusser/leaguehub/internal/app/consistency/accountindex"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"github.com/dalemusser/leaguehub/internal/testutil"
	"go.uber.org/zap"
)

func buildIndex(t *testing.T, fx *testutil.Fixtures) *accountindex.Index {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	idx, err := accountindex.Build(ctx, fx.Store(), zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func groupsWithReason(rep Report, reason string) []Group {
	var out []Group
	for _, g := range rep.Duplicates {
		if g.Reason == reason {
			out = append(out, g)
		}
	}
	return out
}

func TestDetect_ShadowCopiesReportedAsEmailDuplicate(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateUser("u1", "Ali Ben", "ali@x.com", "player")
	fx.CreatePlayerAccount("p1", "Ali", "Ben", "Ali@X.com")

	rep := Detect(buildIndex(t, fx))

	email := groupsWithReason(rep, ReasonEmail)
	if len(email) != 1 {
		t.Fatalf("got %d email groups, want 1: %+v", len(email), rep.Duplicates)
	}
	if email[0].Email != "ali@x.com" || email[0].Count != 2 {
		t.Errorf("unexpected group %+v", email[0])
	}
	if len(groupsWithReason(rep, ReasonName)) != 0 {
		t.Error("identical names must not produce a similar-name group")
	}
	if !rep.Success || rep.TotalEmails != 1 || rep.DuplicatesCount != 1 {
		t.Errorf("unexpected report header %+v", rep)
	}
}

func TestDetect_FlagsNearDuplicateNames(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreatePlayerAccount("p1", "karim", "demetri", "karim@x.com")
	fx.CreatePlayerAccount("p2", "karim", "demetry", "kdemetry@x.com")

	rep := Detect(buildIndex(t, fx))

	names := groupsWithReason(rep, ReasonName)
	if len(names) != 1 {
		t.Fatalf("got %d name groups, want 1", len(names))
	}
	if names[0].Count != 2 || names[0].Similarity != 92 {
		t.Errorf("group = %+v, want count 2 similarity 92", names[0])
	}
	if names[0].Email != "" {
		t.Errorf("name groups carry no email, got %q", names[0].Email)
	}
}

func TestDetect_SimilarityBoundary(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		flagged bool
	}{
		{"exactly 0.80 not flagged", "Jonas", "Jonah", false},
		{"identical not flagged", "Ali Ben", "Ali Ben", false},
		{"above threshold flagged", "karim demetri", "karim demetry", true},
		{"short names skipped", "Al", "Ai", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := testutil.NewFixtures(t)
			fx.CreateUser("u1", tt.a, "one@x.com", "user")
			fx.CreateUser("u2", tt.b, "two@x.com", "user")

			got := len(groupsWithReason(Detect(buildIndex(t, fx)), ReasonName)) > 0
			if got != tt.flagged {
				t.Errorf("flagged = %v, want %v", got, tt.flagged)
			}
		})
	}
}

func TestDetect_SameCollectionSameEmailNotNameFlagged(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreatePlayerAccount("p1", "karim", "demetri", "karim@x.com")
	fx.CreatePlayerAccount("p2", "karim", "demetry", "karim@x.com")

	rep := Detect(buildIndex(t, fx))
	if n := len(groupsWithReason(rep, ReasonName)); n != 0 {
		t.Errorf("got %d name groups, want 0", n)
	}
	if n := len(groupsWithReason(rep, ReasonEmail)); n != 1 {
		t.Errorf("got %d email groups, want 1", n)
	}
}

func TestDetect_CrossCollectionSameEmailNameFlagged(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreatePlayerAccount("p1", "karim", "demetri", "karim@x.com")
	fx.CreateCoachAccount("c1", "karim", "demetry", "karim@x.com")

	rep := Detect(buildIndex(t, fx))
	if n := len(groupsWithReason(rep, ReasonName)); n != 1 {
		t.Errorf("got %d name groups, want 1", n)
	}
}

func TestDetect_FirstMemberGroupingUnderMerges(t *testing.T) {
	fx := testutil.NewFixtures(t)
	// A~C and B~C, but A and B are too far apart.
	fx.CreatePlayerAccount("a", "Samuel", "Okoro", "a@x.com")
	fx.CreatePlayerAccount("b", "Samuel", "Akura", "b@x.com")
	fx.CreatePlayerAccount("c", "Samuel", "Okora", "c@x.com")

	names := groupsWithReason(Detect(buildIndex(t, fx)), ReasonName)
	if len(names) != 2 {
		t.Fatalf("got %d name groups, want 2: %+v", len(names), names)
	}
	if names[0].Accounts[0].ID != "a" || names[0].Accounts[1].ID != "c" || names[0].Similarity != 91 {
		t.Errorf("first group = %+v", names[0])
	}
	if names[1].Accounts[0].ID != "b" || names[1].Accounts[1].ID != "c" || names[1].Similarity != 82 {
		t.Errorf("second group = %+v", names[1])
	}
}

func TestDetect_SortedByCountDescending(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreatePlayerAccount("p1", "Karim", "Demetri", "karim@x.com")
	fx.CreatePlayerAccount("p2", "Karim", "Demetry", "kd@x.com")
	fx.CreatePlayerAccount("p3", "Lee", "Wong", "lee@x.com")
	fx.CreateUser("u3", "Lee Wong", "lee@x.com", "user")
	fx.CreateUserProfile("uid3", "Lee", "Wong", "LEE@x.com")

	rep := Detect(buildIndex(t, fx))
	if len(rep.Duplicates) != 2 {
		t.Fatalf("got %d groups, want 2: %+v", len(rep.Duplicates), rep.Duplicates)
	}
	if rep.Duplicates[0].Count != 3 || rep.Duplicates[0].Reason != ReasonEmail {
		t.Errorf("largest group should be first, got %+v", rep.Duplicates[0])
	}
	if rep.Duplicates[1].Count != 2 || rep.Duplicates[1].Reason != ReasonName {
		t.Errorf("second group = %+v", rep.Duplicates[1])
	}
}

func TestDetector_Run_DegradesFailedCollection(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t)
	fx.CreatePlayerAccount("p1", "Ali", "Ben", "ali@x.com")
	fx.CreateCoachAccount("c1", "Ali", "Ben", "ali@x.com")
	fx.Store().FailLoad(models.CollCoachAccounts, errors.New("unavailable"))

	d := &Detector{Store: fx.Store(), Log: zap.NewNop()}
	rep, err := d.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.DuplicatesCount != 0 {
		t.Errorf("DuplicatesCount = %d, want 0", rep.DuplicatesCount)
	}
	if rep.Summary.LoadErrors[models.CollCoachAccounts] != "unavailable" {
		t.Errorf("LoadErrors = %v", rep.Summary.LoadErrors)
	}
	if rep.Duplicates == nil {
		t.Error("Duplicates should be an empty list, not nil")
	}
}
