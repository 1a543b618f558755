package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"github.com/google/uuid"
)

// Fixtures provides helper methods for creating test data in an
// in-memory document store.
type Fixtures struct {
	store *docs.Memory
	t     *testing.T
}

// NewFixtures creates a Fixtures instance over a fresh in-memory store.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	return &Fixtures{store: docs.NewMemory(), t: t}
}

// Store returns the underlying store for direct access in tests.
func (f *Fixtures) Store() *docs.Memory {
	return f.store
}

// Put stores raw fields under collection/id.
func (f *Fixtures) Put(collection, id string, fields map[string]any) {
	f.t.Helper()
	f.store.Put(collection, id, fields)
}

// Doc reads a document back, failing the test if it is missing.
func (f *Fixtures) Doc(collection, id string) map[string]any {
	f.t.Helper()
	d, err := f.store.Get(context.Background(), collection, id)
	if err != nil {
		f.t.Fatalf("read %s/%s: %v", collection, id, err)
	}
	return d.Fields
}

// Count returns the number of documents in a collection.
func (f *Fixtures) Count(collection string) int {
	f.t.Helper()
	all, err := f.store.All(context.Background(), collection)
	if err != nil {
		f.t.Fatalf("read %s: %v", collection, err)
	}
	return len(all)
}

func (f *Fixtures) encode(collection, id string, v any) {
	f.t.Helper()
	fields, err := docs.Encode(v)
	if err != nil {
		f.t.Fatalf("failed to encode %s fixture: %v", collection, err)
	}
	f.store.Put(collection, id, fields)
}

func newID() string { return uuid.NewString() }

// Jersey returns a pointer for jersey number fields.
func Jersey(n int) *int { return &n }

// CreatePlayerAccount creates a playerAccounts document. An empty id gets
// a generated one.
func (f *Fixtures) CreatePlayerAccount(id, firstName, lastName, email string) models.Account {
	f.t.Helper()
	return f.createAccount(models.CollPlayerAccounts, id, firstName, lastName, email, models.AccountTypePlayer)
}

// CreateCoachAccount creates a coachAccounts document.
func (f *Fixtures) CreateCoachAccount(id, firstName, lastName, email string) models.Account {
	f.t.Helper()
	return f.createAccount(models.CollCoachAccounts, id, firstName, lastName, email, models.AccountTypeCoach)
}

// CreateUser creates a users document with a full name only.
func (f *Fixtures) CreateUser(id, fullName, email, role string) models.Account {
	f.t.Helper()
	if id == "" {
		id = newID()
	}
	now := time.Now().UTC()
	a := models.Account{ID: id, Email: email, FullName: fullName, Role: role, CreatedAt: &now}
	f.encode(models.CollUsers, id, a)
	return a
}

// CreateUserProfile creates a userProfiles document keyed by uid.
func (f *Fixtures) CreateUserProfile(uid, firstName, lastName, email string) models.Account {
	f.t.Helper()
	a := models.Account{
		ID:        uid,
		UID:       uid,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		FullName:  models.DisplayName(firstName, lastName),
	}
	f.encode(models.CollUserProfiles, uid, a)
	return a
}

func (f *Fixtures) createAccount(coll, id, firstName, lastName, email, role string) models.Account {
	f.t.Helper()
	if id == "" {
		id = newID()
	}
	now := time.Now().UTC()
	a := models.Account{
		ID:        id,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		CreatedAt: &now,
	}
	f.encode(coll, id, a)
	return a
}

// CreateTeam stores a team document.
func (f *Fixtures) CreateTeam(team models.Team) models.Team {
	f.t.Helper()
	if team.ID == "" {
		team.ID = newID()
	}
	f.encode(models.CollTeams, team.ID, team)
	return team
}

// CreateLineup stores a lineup document.
func (f *Fixtures) CreateLineup(l models.Lineup) models.Lineup {
	f.t.Helper()
	if l.ID == "" {
		l.ID = newID()
	}
	f.encode(models.CollLineups, l.ID, l)
	return l
}

// CreateResult stores a match result document.
func (f *Fixtures) CreateResult(r models.MatchResult) models.MatchResult {
	f.t.Helper()
	if r.ID == "" {
		r.ID = newID()
	}
	f.encode(models.CollResults, r.ID, r)
	return r
}

// CreateStatistics stores a statistics document.
func (f *Fixtures) CreateStatistics(s models.PlayerStatistics) models.PlayerStatistics {
	f.t.Helper()
	if s.ID == "" {
		s.ID = newID()
	}
	f.encode(models.CollStatistics, s.ID, s)
	return s
}
