// Package duplicates finds suspected duplicate accounts: documents that
// share a normalized email and documents whose names are nearly equal.
package duplicates

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/leaguehub/internal/app/consistency/accountindex"
	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"go.uber.org/zap"
)

// Report reasons.
const (
	ReasonEmail = "identical email"
	ReasonName  = "similar name"
)

const (
	// Threshold is the exclusive lower bound for a near-duplicate name.
	Threshold = 0.80
	// MinNameLength skips names too short to compare meaningfully.
	MinNameLength = 3
)

// Account is one member of a duplicate group.
type Account struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	Type       string `json:"type"`
	Email      string `json:"email"`
	Name       string `json:"name"`
}

// Group is a set of accounts suspected to be the same person.
type Group struct {
	Email      string    `json:"email,omitempty"`
	Reason     string    `json:"reason"`
	Count      int       `json:"count"`
	Similarity int       `json:"similarity,omitempty"` // average pair score, percent
	Accounts   []Account `json:"accounts"`
}

// Summary describes the scan itself.
type Summary struct {
	TotalAccounts   int               `json:"totalAccounts"`
	EmailDuplicates int               `json:"emailDuplicates"`
	NameDuplicates  int               `json:"nameDuplicates"`
	MissingEmail    int               `json:"missingEmail"`
	Collections     map[string]int    `json:"collections"`
	LoadErrors      map[string]string `json:"loadErrors,omitempty"`
}

// Report is the detect-duplicates response body.
type Report struct {
	Success         bool    `json:"success"`
	TotalEmails     int     `json:"totalEmails"`
	DuplicatesCount int     `json:"duplicatesCount"`
	Duplicates      []Group `json:"duplicates"`
	Summary         Summary `json:"summary"`
}

// Detector runs a scan against a store.
type Detector struct {
	Store       docs.Reader
	Log         *zap.Logger
	Collections []string
}

// Run loads the account collections and detects duplicates. Collection
// load failures are logged and scanned as empty.
func (d *Detector) Run(ctx context.Context) (Report, error) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	idx, err := accountindex.Build(ctx, d.Store, log, d.Collections)
	if err != nil {
		return Report{}, err
	}
	rep := Detect(idx)
	log.Info("duplicate scan complete",
		zap.Int("accounts", rep.Summary.TotalAccounts),
		zap.Int("emails", rep.TotalEmails),
		zap.Int("groups", rep.DuplicatesCount))
	return rep, nil
}

// Detect builds the duplicate report for an index.
func Detect(idx *accountindex.Index) Report {
	entries := idx.Entries()

	var groups []Group
	for _, email := range idx.Emails() {
		list := idx.Lookup(email)
		if len(list) < 2 {
			continue
		}
		g := Group{Email: email, Reason: ReasonEmail, Count: len(list)}
		for _, e := range list {
			g.Accounts = append(g.Accounts, toAccount(e))
		}
		groups = append(groups, g)
	}
	emailGroups := len(groups)

	nameGroups := nearDuplicates(entries)
	groups = append(groups, nameGroups...)

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	if groups == nil {
		groups = []Group{}
	}

	sum := Summary{
		TotalAccounts:   len(entries),
		EmailDuplicates: emailGroups,
		NameDuplicates:  len(nameGroups),
		MissingEmail:    idx.MissingEmail,
		Collections:     idx.Counts(),
	}
	if len(idx.LoadErrors) > 0 {
		sum.LoadErrors = make(map[string]string, len(idx.LoadErrors))
		for c, err := range idx.LoadErrors {
			sum.LoadErrors[c] = err.Error()
		}
	}

	return Report{
		Success:         true,
		TotalEmails:     idx.Len(),
		DuplicatesCount: len(groups),
		Duplicates:      groups,
		Summary:         sum,
	}
}

type member struct {
	collection string
	id         string
}

type nameGroup struct {
	members  []accountindex.Entry
	seen     map[member]bool
	scoreSum float64
	pairs    int
}

func (g *nameGroup) add(e accountindex.Entry) {
	k := member{e.Collection, e.ID}
	if !g.seen[k] {
		g.seen[k] = true
		g.members = append(g.members, e)
	}
}

// nearDuplicates compares every pair of entries. A flagged pair joins the
// first group already holding its first member; the second member is not
// looked up, so chains of similar names can land in separate groups.
func nearDuplicates(entries []accountindex.Entry) []Group {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = strings.TrimSpace(e.Name())
	}

	var groups []*nameGroup
	for i := 0; i < len(entries); i++ {
		if utf8.RuneCountInString(names[i]) < MinNameLength {
			continue
		}
		for j := i + 1; j < len(entries); j++ {
			if utf8.RuneCountInString(names[j]) < MinNameLength {
				continue
			}
			a, b := entries[i], entries[j]
			if a.ID == b.ID {
				continue
			}
			if a.Email == b.Email && a.Collection == b.Collection {
				continue
			}
			s := Similarity(names[i], names[j])
			if s <= Threshold || s >= 1.0 {
				continue
			}

			var g *nameGroup
			for _, cand := range groups {
				if cand.seen[member{a.Collection, a.ID}] {
					g = cand
					break
				}
			}
			if g == nil {
				g = &nameGroup{seen: make(map[member]bool)}
				g.add(a)
				groups = append(groups, g)
			}
			g.add(b)
			g.scoreSum += s
			g.pairs++
		}
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		grp := Group{
			Reason:     ReasonName,
			Count:      len(g.members),
			Similarity: int(math.Round(g.scoreSum / float64(g.pairs) * 100)),
		}
		for _, e := range g.members {
			grp.Accounts = append(grp.Accounts, toAccount(e))
		}
		out = append(out, grp)
	}
	return out
}

func toAccount(e accountindex.Entry) Account {
	return Account{
		ID:         e.ID,
		Collection: e.Collection,
		Type:       models.TypeTag(e.Collection),
		Email:      strings.TrimSpace(docs.String(e.Fields, "email")),
		Name:       e.Name(),
	}
}
