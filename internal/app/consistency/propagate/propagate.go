// Package propagate applies an account update to the canonical record and
// to every collection holding a denormalized copy, in one atomic commit.
package propagate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/consistency/emailsync"
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/inputval"
	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is the update-account body.
type Request struct {
	AccountID   string   `json:"accountId" validate:"required"`
	AccountType string   `json:"accountType" validate:"required"`
	UID         string   `json:"uid,omitempty"`
	TeamID      string   `json:"teamId,omitempty"`
	Updates     *Updates `json:"updates" validate:"required"`
}

// Result is the update-account response body.
type Result struct {
	Success            bool               `json:"success"`
	Message            string             `json:"message"`
	UpdatedCollections []string           `json:"updatedCollections"`
	EmailSynced        bool               `json:"emailSynced"`
	EmailSyncSummary   *emailsync.Summary `json:"emailSyncSummary,omitempty"`
	ChangeID           string             `json:"changeId,omitempty"`
}

// Propagator runs account updates.
type Propagator struct {
	Store       docs.Store
	Log         *zap.Logger
	Sync        *emailsync.Synchronizer
	PhoneRegion string
	Now         func() time.Time
}

// New returns a Propagator whose email sync shares the same store.
func New(store docs.Store, logger *zap.Logger, phoneRegion string) *Propagator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Propagator{
		Store:       store,
		Log:         logger,
		Sync:        emailsync.New(store, logger),
		PhoneRegion: phoneRegion,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// Update validates req, runs the email sync when the email changes, then
// commits the fan-out batch. Only a failed canonical read or a failed
// commit fails the call; a failed email sync is logged and reported as
// EmailSynced=false.
func (p *Propagator) Update(ctx context.Context, req Request) (Result, error) {
	pl, err := p.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}

	res := Result{}
	if pl.emailChanged() {
		sum, err := p.Sync.Sync(ctx, emailsync.Request{
			OldEmail:    pl.storedEmail,
			NewEmail:    *pl.updates.Email,
			AccountType: req.AccountType,
			AccountID:   req.AccountID,
			UID:         req.UID,
		})
		if err != nil {
			p.Log.Warn("email sync failed; continuing with account update",
				zap.String("account_id", req.AccountID),
				zap.Error(err))
		} else {
			res.EmailSynced = true
			res.EmailSyncSummary = &sum
		}
	}

	if err := pl.build(ctx); err != nil {
		return Result{}, err
	}
	updated := pl.batch.Collections()

	change := models.AccountChange{
		ID:          uuid.NewString(),
		AccountID:   req.AccountID,
		AccountType: req.AccountType,
		Fields:      pl.fields,
		Collections: updated,
		EmailSynced: res.EmailSynced,
		CreatedAt:   pl.now,
	}
	outbox, err := docs.Encode(change)
	if err != nil {
		return Result{}, err
	}
	pl.batch.Create(models.CollAccountChanges, change.ID, outbox)

	if err := p.Store.Commit(ctx, pl.batch); err != nil {
		p.Log.Error("account update commit failed",
			zap.String("account_id", req.AccountID),
			zap.Strings("collections", updated),
			zap.Error(err))
		return Result{}, err
	}

	p.Log.Info("account updated",
		zap.String("account_id", req.AccountID),
		zap.String("account_type", req.AccountType),
		zap.Strings("collections", updated),
		zap.Bool("email_synced", res.EmailSynced))

	res.Success = true
	res.Message = fmt.Sprintf("Account updated in %d collections", len(updated))
	res.UpdatedCollections = updated
	res.ChangeID = change.ID
	return res, nil
}

// Plan returns the fan-out batch for req without running the email sync
// or committing anything.
func (p *Propagator) Plan(ctx context.Context, req Request) (*docs.Batch, error) {
	pl, err := p.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := pl.build(ctx); err != nil {
		return nil, err
	}
	return pl.batch, nil
}

func (p *Propagator) prepare(ctx context.Context, req Request) (*plan, error) {
	if err := inputval.Struct(req); err != nil {
		return nil, err
	}
	u := req.Updates.clean(p.PhoneRegion)
	if u.Email != nil && !inputval.IsValidEmail(*u.Email) {
		return nil, &inputval.Error{
			Message: "missing or invalid parameters",
			Fields:  map[string]string{"email": "must be a valid email"},
		}
	}
	if u.Empty() {
		return nil, &inputval.Error{Message: "updates contain no permitted fields"}
	}

	now := time.Now().UTC()
	if p.Now != nil {
		now = p.Now()
	}
	pl := &plan{
		p:       p,
		req:     req,
		updates: u,
		fields:  u.Fields(),
		batch:   docs.NewBatch(),
		now:     now,
	}

	if coll := models.AccountCollection(req.AccountType); coll != "" {
		d, err := p.Store.Get(ctx, coll, req.AccountID)
		switch {
		case err == nil:
			pl.canonical = d.Fields
			pl.haveCanonical = true
		case errors.Is(err, docs.ErrNotFound):
			p.Log.Warn("canonical account not found; updating copies only",
				zap.String("collection", coll),
				zap.String("account_id", req.AccountID))
		default:
			return nil, fmt.Errorf("read %s/%s: %w", coll, req.AccountID, err)
		}
	} else {
		p.Log.Warn("unknown account type; canonical record not updated",
			zap.String("account_type", req.AccountType),
			zap.String("account_id", req.AccountID))
	}
	pl.storedEmail = normalize.Email(docs.String(pl.canonical, "email"))
	return pl, nil
}
