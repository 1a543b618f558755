package emailsync

import (
	"context"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"go.uber.org/zap"
)

type planner struct {
	s        *Synchronizer
	req      Request
	oldEmail string
	newEmail string
	batch    *docs.Batch
}

// load reads a collection, degrading a failed read to empty.
func (p *planner) load(ctx context.Context, coll string) ([]docs.Doc, error) {
	all, err := p.s.Store.All(ctx, coll)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.s.Log.Warn("email sync: collection load failed; skipping",
			zap.String("collection", coll), zap.Error(err))
		return nil, nil
	}
	return all, nil
}

func (p *planner) matches(v string) bool {
	return normalize.Email(v) == p.oldEmail
}

func (p *planner) accounts(ctx context.Context, coll string) error {
	all, err := p.load(ctx, coll)
	if err != nil {
		return err
	}
	canonical := coll == models.AccountCollection(p.req.AccountType)
	for _, d := range all {
		email := docs.String(d.Fields, "email")
		if normalize.Email(email) == p.newEmail {
			continue
		}
		hit := p.matches(email)
		if !hit && canonical && p.req.AccountID != "" && d.ID == p.req.AccountID {
			hit = true
		}
		if !hit && coll == models.CollUserProfiles && p.req.UID != "" {
			hit = d.ID == p.req.UID || docs.String(d.Fields, "uid") == p.req.UID
		}
		if hit {
			p.batch.Set(coll, d.ID, map[string]any{"email": p.newEmail})
		}
	}
	return nil
}

// teams rewrites the coach sub-object and roster entries. Roster arrays are
// written back whole.
func (p *planner) teams(ctx context.Context) error {
	all, err := p.load(ctx, models.CollTeams)
	if err != nil {
		return err
	}
	for _, d := range all {
		patch := make(map[string]any)
		if p.matches(docs.String(d.Fields, "coach.email")) {
			patch["coach.email"] = p.newEmail
		}
		if p.matches(docs.String(d.Fields, "coachEmail")) {
			patch["coachEmail"] = p.newEmail
		}
		players := docs.CloneSlice(docs.Slice(d.Fields, "players"))
		changed := false
		for _, item := range players {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if p.matches(docs.String(entry, "email")) {
				entry["email"] = p.newEmail
				changed = true
			}
		}
		if changed {
			patch["players"] = players
		}
		p.batch.Set(models.CollTeams, d.ID, patch)
	}
	return nil
}
