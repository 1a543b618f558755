// Package docs is the document-store layer shared by the consistency
// routines. Documents are handled as generic field maps because the same
// account data is copied into many differently shaped collections.
//
// Three backends implement Store: MongoDB (transactional batch commit),
// Cloud Firestore (RunTransaction) and an in-memory store used by tests
// and dry runs.
package docs

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the document does not exist, and by
// Commit when a Set targets a missing document.
var ErrNotFound = errors.New("document not found")

// Doc is one document: its ID and its fields. Fields never contain the
// backend's own id key (_id for Mongo).
type Doc struct {
	ID     string
	Fields map[string]any
}

// Reader loads documents. A missing collection reads as empty.
type Reader interface {
	All(ctx context.Context, collection string) ([]Doc, error)
	Get(ctx context.Context, collection, id string) (Doc, error)
	FindEq(ctx context.Context, collection, field string, value any) ([]Doc, error)
}

// Committer applies a batch of writes all-or-nothing.
type Committer interface {
	Commit(ctx context.Context, b *Batch) error
}

// Store is a full backend.
type Store interface {
	Reader
	Committer
	Ping(ctx context.Context) error
}
