// Package backup snapshots whole collections to JSON-ready maps.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the backup response body. Each document carries its id.
type Snapshot struct {
	Success     bool                        `json:"success"`
	CreatedAt   time.Time                   `json:"createdAt"`
	Counts      map[string]int              `json:"counts"`
	Collections map[string][]map[string]any `json:"collections"`
}

// Exporter reads collections for a snapshot.
type Exporter struct {
	Store docs.Reader
	Log   *zap.Logger
}

// ParseCollections splits a comma-separated list, dropping blanks and
// repeats. An empty list yields the defaults.
func ParseCollections(raw string, defaults []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		if len(defaults) == 0 {
			defaults = models.DefaultBackupCollections
		}
		return append([]string(nil), defaults...)
	}
	return out
}

// Export loads every named collection concurrently. Unlike the duplicate
// scan, a failed read fails the whole export: a partial backup is not a
// backup.
func (e *Exporter) Export(ctx context.Context, collections []string) (Snapshot, error) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	loaded := make([][]docs.Doc, len(collections))

	g, gctx := errgroup.WithContext(ctx)
	for i, coll := range collections {
		g.Go(func() error {
			d, err := e.Store.All(gctx, coll)
			if err != nil {
				return fmt.Errorf("export %s: %w", coll, err)
			}
			loaded[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("backup export failed", zap.Error(err))
		return Snapshot{}, err
	}

	snap := Snapshot{
		Success:     true,
		CreatedAt:   time.Now().UTC(),
		Counts:      make(map[string]int, len(collections)),
		Collections: make(map[string][]map[string]any, len(collections)),
	}
	total := 0
	for i, coll := range collections {
		out := make([]map[string]any, 0, len(loaded[i]))
		for _, d := range loaded[i] {
			fields := docs.Clone(d.Fields)
			if fields == nil {
				fields = make(map[string]any)
			}
			fields["id"] = d.ID
			out = append(out, fields)
		}
		snap.Collections[coll] = out
		snap.Counts[coll] = len(out)
		total += len(out)
	}
	log.Info("backup exported",
		zap.Strings("collections", collections),
		zap.Int("documents", total))
	return snap, nil
}

// Write encodes the snapshot as indented JSON.
func (s Snapshot) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
