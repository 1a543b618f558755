package docs

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore is the Cloud Firestore backend, matching the store the league
// data originally lived in.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore opens a Firestore client. An empty databaseID selects the
// default database.
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Firestore{client: client}, nil
}

// Close releases the client.
func (s *Firestore) Close() error {
	return s.client.Close()
}

func collect(iter *firestore.DocumentIterator, collection string) ([]Doc, error) {
	defer iter.Stop()
	var out []Doc
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("iterate %s: %w", collection, err)
		}
		out = append(out, Doc{ID: snap.Ref.ID, Fields: plainFields(snap.Data())})
	}
}

func (s *Firestore) All(ctx context.Context, collection string) ([]Doc, error) {
	return collect(s.client.Collection(collection).Documents(ctx), collection)
}

func (s *Firestore) FindEq(ctx context.Context, collection, field string, value any) ([]Doc, error) {
	q := s.client.Collection(collection).Where(field, "==", value)
	return collect(q.Documents(ctx), collection)
}

func (s *Firestore) Get(ctx context.Context, collection, id string) (Doc, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Doc{}, ErrNotFound
		}
		return Doc{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return Doc{ID: snap.Ref.ID, Fields: plainFields(snap.Data())}, nil
}

// Commit applies the batch in one Firestore transaction.
func (s *Firestore) Commit(ctx context.Context, b *Batch) error {
	if b.Empty() {
		return nil
	}
	writes := b.Writes()
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, w := range writes {
			ref := s.client.Collection(w.Collection).Doc(w.ID)
			switch w.Op {
			case OpCreate:
				if err := tx.Create(ref, w.Fields); err != nil {
					return fmt.Errorf("create %s/%s: %w", w.Collection, w.ID, err)
				}
			case OpSet:
				updates := make([]firestore.Update, 0, len(w.Fields))
				for path, v := range w.Fields {
					updates = append(updates, firestore.Update{Path: path, Value: v})
				}
				if err := tx.Update(ref, updates); err != nil {
					return fmt.Errorf("set %s/%s: %w", w.Collection, w.ID, err)
				}
			}
		}
		return nil
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("commit: %w: %v", ErrNotFound, err)
	}
	return err
}

// Ping reads a sentinel document; NotFound still proves connectivity.
func (s *Firestore) Ping(ctx context.Context) error {
	_, err := s.client.Collection("_health").Doc("ping").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}
