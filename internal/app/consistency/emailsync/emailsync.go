// Package emailsync renames an account email in every collection that
// stores a copy of it.
package emailsync

import (
	"context"
	"errors"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/inputval"
	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"go.uber.org/zap"
)

var (
	ErrMissingEmail = errors.New("old email is required")
	ErrInvalidEmail = errors.New("new email is not a valid address")
	ErrSameEmail    = errors.New("new email is the same as the old email")
)

// Request names the rename. AccountType selects the canonical collection;
// AccountID and UID additionally match the canonical record and profile
// when their stored email has already drifted.
type Request struct {
	OldEmail    string
	NewEmail    string
	AccountType string
	AccountID   string
	UID         string
}

// Summary lists the documents rewritten, by collection.
type Summary struct {
	OldEmail    string              `json:"oldEmail,omitempty"`
	NewEmail    string              `json:"newEmail,omitempty"`
	Collections map[string][]string `json:"collections"`
	Total       int                 `json:"total"`
}

// Synchronizer plans and commits email renames.
type Synchronizer struct {
	Store docs.Store
	Log   *zap.Logger
}

// New returns a Synchronizer over store.
func New(store docs.Store, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synchronizer{Store: store, Log: logger}
}

// Sync rewrites every copy of the old email in one commit. Nothing is
// committed when no document still carries the old email, so running the
// same rename twice is a no-op.
func (s *Synchronizer) Sync(ctx context.Context, req Request) (Summary, error) {
	b, sum, err := s.Plan(ctx, req)
	if err != nil {
		return Summary{}, err
	}
	if b.Empty() {
		s.Log.Info("email sync found nothing to update",
			zap.String("old_email", normalize.Email(req.OldEmail)))
		return sum, nil
	}
	if err := s.Store.Commit(ctx, b); err != nil {
		return Summary{}, err
	}
	s.Log.Info("email synced",
		zap.String("old_email", normalize.Email(req.OldEmail)),
		zap.String("new_email", normalize.Email(req.NewEmail)),
		zap.Int("documents", sum.Total))
	return sum, nil
}

// Plan builds the batch without committing it.
func (s *Synchronizer) Plan(ctx context.Context, req Request) (*docs.Batch, Summary, error) {
	oldEmail, newEmail, err := validate(req)
	if err != nil {
		return nil, Summary{}, err
	}
	p := &planner{
		s:        s,
		req:      req,
		oldEmail: oldEmail,
		newEmail: newEmail,
		batch:    docs.NewBatch(),
	}

	for _, coll := range accountCollections(req.AccountType) {
		if err := p.accounts(ctx, coll); err != nil {
			return nil, Summary{}, err
		}
	}
	if err := p.teams(ctx); err != nil {
		return nil, Summary{}, err
	}

	sum := Summary{
		OldEmail:    oldEmail,
		NewEmail:    newEmail,
		Collections: p.batch.IDs(),
		Total:       p.batch.Len(),
	}
	return p.batch, sum, nil
}

// CheckRequest validates a rename without touching the store.
func CheckRequest(req Request) error {
	_, _, err := validate(req)
	return err
}

func validate(req Request) (string, string, error) {
	oldEmail := normalize.Email(req.OldEmail)
	newEmail := normalize.Email(req.NewEmail)
	if oldEmail == "" {
		return "", "", ErrMissingEmail
	}
	if newEmail == "" || !inputval.IsValidEmail(newEmail) {
		return "", "", ErrInvalidEmail
	}
	if oldEmail == newEmail {
		return "", "", ErrSameEmail
	}
	return oldEmail, newEmail, nil
}

// accountCollections is the canonical collection for the type followed by
// the mirrors that always carry a copy.
func accountCollections(accountType string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	add(models.AccountCollection(accountType))
	add(models.CollPlayers)
	add(models.CollUsers)
	add(models.CollUserProfiles)
	return out
}
