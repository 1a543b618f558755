package docs

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/leaguehub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Mongo is the MongoDB backend. Document ids are stored in _id; ids that
// parse as ObjectIDs match either representation.
type Mongo struct {
	db         *mongo.Database
	log        *zap.Logger
	requireTxn bool
}

// NewMongo wraps a database. When requireTxn is set, a Commit of more than
// one write fails with txn.ErrNotSupported on deployments without
// transactions instead of applying the writes one by one.
func NewMongo(db *mongo.Database, logger *zap.Logger, requireTxn bool) *Mongo {
	return &Mongo{db: db, log: logger, requireTxn: requireTxn}
}

// Database exposes the underlying database for index setup.
func (s *Mongo) Database() *mongo.Database { return s.db }

func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

func toDoc(m bson.M) Doc {
	var id string
	switch v := m["_id"].(type) {
	case string:
		id = v
	case primitive.ObjectID:
		id = v.Hex()
	case nil:
	default:
		id = fmt.Sprint(v)
	}
	delete(m, "_id")
	return Doc{ID: id, Fields: plainFields(m)}
}

func (s *Mongo) find(ctx context.Context, collection string, filter bson.M) ([]Doc, error) {
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var out []Doc
	for cur.Next(ctx) {
		var m bson.M
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		out = append(out, toDoc(m))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return out, nil
}

func (s *Mongo) All(ctx context.Context, collection string) ([]Doc, error) {
	return s.find(ctx, collection, bson.M{})
}

func (s *Mongo) FindEq(ctx context.Context, collection, field string, value any) ([]Doc, error) {
	return s.find(ctx, collection, bson.M{field: value})
}

func (s *Mongo) Get(ctx context.Context, collection, id string) (Doc, error) {
	var m bson.M
	err := s.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Doc{}, ErrNotFound
	}
	if err != nil {
		return Doc{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return toDoc(m), nil
}

// Commit applies the batch inside one transaction.
func (s *Mongo) Commit(ctx context.Context, b *Batch) error {
	if b.Empty() {
		return nil
	}
	writes := b.Writes()
	apply := func(ctx context.Context) error {
		for _, w := range writes {
			c := s.db.Collection(w.Collection)
			switch w.Op {
			case OpCreate:
				doc := bson.M{"_id": w.ID}
				for k, v := range w.Fields {
					doc[k] = v
				}
				if _, err := c.InsertOne(ctx, doc); err != nil {
					return fmt.Errorf("create %s/%s: %w", w.Collection, w.ID, err)
				}
			case OpSet:
				res, err := c.UpdateOne(ctx, idFilter(w.ID), bson.M{"$set": w.Fields})
				if err != nil {
					return fmt.Errorf("set %s/%s: %w", w.Collection, w.ID, err)
				}
				if res.MatchedCount == 0 {
					return fmt.Errorf("set %s/%s: %w", w.Collection, w.ID, ErrNotFound)
				}
			}
		}
		return nil
	}
	if s.atomicOnly(len(writes)) {
		return txn.RunAtomic(ctx, s.db, apply)
	}
	return txn.Run(ctx, s.db, s.log, apply)
}

// atomicOnly reports whether a batch of n writes must run in a transaction.
// A single write is atomic on its own.
func (s *Mongo) atomicOnly(n int) bool {
	return s.requireTxn && n > 1
}

func (s *Mongo) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}
