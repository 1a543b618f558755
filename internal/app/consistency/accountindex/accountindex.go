// Package accountindex loads the account-like collections and groups their
// documents by normalized email.
package accountindex

import (
	"context"
	"sort"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Entry is one account-like document.
type Entry struct {
	Collection string
	ID         string
	Email      string // normalized
	Fields     map[string]any
}

// Name returns the display name stored on the entry.
func (e Entry) Name() string { return NameOf(e.Fields) }

// Index maps normalized email to every document carrying it.
type Index struct {
	entries      []Entry
	byEmail      map[string][]Entry
	counts       map[string]int
	MissingEmail int
	LoadErrors   map[string]error
}

// Build loads collections concurrently and indexes them. When collections
// is empty the standard account collections are used. A collection that
// fails to load is indexed as empty and recorded in LoadErrors.
func Build(ctx context.Context, r docs.Reader, logger *zap.Logger, collections []string) (*Index, error) {
	if len(collections) == 0 {
		collections = models.AccountCollections
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	loaded := make([][]docs.Doc, len(collections))
	loadErrs := make([]error, len(collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, coll := range collections {
		g.Go(func() error {
			d, err := r.All(gctx, coll)
			if err != nil {
				loadErrs[i] = err
				return nil
			}
			loaded[i] = d
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := &Index{
		byEmail:    make(map[string][]Entry),
		counts:     make(map[string]int, len(collections)),
		LoadErrors: make(map[string]error),
	}
	for i, coll := range collections {
		if err := loadErrs[i]; err != nil {
			logger.Error("collection load failed; treating as empty",
				zap.String("collection", coll), zap.Error(err))
			idx.LoadErrors[coll] = err
			idx.counts[coll] = 0
			continue
		}
		idx.counts[coll] = len(loaded[i])
		for _, d := range loaded[i] {
			email := normalize.Email(docs.String(d.Fields, "email"))
			if email == "" {
				idx.MissingEmail++
				logger.Warn("document has no email; skipped",
					zap.String("collection", coll), zap.String("id", d.ID))
				continue
			}
			e := Entry{Collection: coll, ID: d.ID, Email: email, Fields: d.Fields}
			idx.entries = append(idx.entries, e)
			idx.byEmail[email] = append(idx.byEmail[email], e)
		}
	}
	return idx, nil
}

// Lookup returns the entries for an email, normalizing it first.
func (x *Index) Lookup(email string) []Entry {
	return x.byEmail[normalize.Email(email)]
}

// Emails returns the distinct normalized emails, sorted.
func (x *Index) Emails() []string {
	out := make([]string, 0, len(x.byEmail))
	for e := range x.byEmail {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Entries flattens the index in collection order, then load order.
func (x *Index) Entries() []Entry {
	return append([]Entry(nil), x.entries...)
}

// Counts returns the number of documents loaded per collection, including
// those skipped for a missing email.
func (x *Index) Counts() map[string]int {
	out := make(map[string]int, len(x.counts))
	for k, v := range x.counts {
		out[k] = v
	}
	return out
}

// Len is the number of distinct emails.
func (x *Index) Len() int { return len(x.byEmail) }

// NameOf picks the best display name stored on an account-like document:
// first and last name, then fullName, name or displayName.
func NameOf(fields map[string]any) string {
	if n := models.DisplayName(docs.String(fields, "firstName"), docs.String(fields, "lastName")); n != "" {
		return n
	}
	for _, k := range []string{"fullName", "name", "displayName"} {
		if v := normalize.Name(docs.String(fields, k)); v != "" {
			return v
		}
	}
	return ""
}
