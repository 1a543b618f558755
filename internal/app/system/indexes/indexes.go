// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/leaguehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Set is the desired indexes of one collection.
type Set struct {
	Collection string
	Models     []mongo.IndexModel
}

func index(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

// Desired lists every index the consistency routines rely on. None are
// unique: duplicates across and within account collections are expected
// and only reported.
func Desired() []Set {
	var sets []Set
	for _, c := range []string{
		models.CollPlayerAccounts,
		models.CollCoachAccounts,
		models.CollUsers,
		models.CollUserProfiles,
		models.CollPlayers,
	} {
		sets = append(sets, Set{Collection: c, Models: []mongo.IndexModel{
			index("idx_"+c+"_email", bson.D{{Key: "email", Value: 1}}),
		}})
	}
	sets[3].Models = append(sets[3].Models,
		index("idx_userProfiles_uid", bson.D{{Key: "uid", Value: 1}}))

	return append(sets,
		Set{Collection: models.CollTeams, Models: []mongo.IndexModel{
			index("idx_teams_name", bson.D{{Key: "name", Value: 1}}),
			index("idx_teams_coachId", bson.D{{Key: "coachId", Value: 1}}),
		}},
		Set{Collection: models.CollLineups, Models: []mongo.IndexModel{
			index("idx_lineups_teamId_matchId", bson.D{{Key: "teamId", Value: 1}, {Key: "matchId", Value: 1}}),
		}},
		Set{Collection: models.CollStatistics, Models: []mongo.IndexModel{
			index("idx_statistics_playerId", bson.D{{Key: "playerId", Value: 1}}),
		}},
		Set{Collection: models.CollAccountChanges, Models: []mongo.IndexModel{
			index("idx_accountChanges_accountId_createdAt", bson.D{{Key: "accountId", Value: 1}, {Key: "createdAt", Value: -1}}),
		}},
		Set{Collection: models.CollAuditLogs, Models: []mongo.IndexModel{
			index("idx_auditLogs_timestamp", bson.D{{Key: "timestamp", Value: -1}}),
			index("idx_auditLogs_category_type_timestamp", bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			}),
		}},
	)
}

/*
EnsureAll is called at startup. Each set is reconciled independently and
idempotently; errors are aggregated so every problem is visible at once.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, s := range Desired() {
		if err := ensureIndexSet(ctx, db.Collection(s.Collection), s.Models); err != nil {
			problems = append(problems, s.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// ensureIndexSet creates missing indexes and renames ones whose key
// pattern already exists under another name.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range desired {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if name == "" || ex.Name == name {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			zap.L().Info("renaming index to align with desired name",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name),
				zap.String("keys", sig))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): rename drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil && isOptionsConflictErr(err) {
			// Lost a race with another instance creating the same keys.
			if _, ok := listExisting(ctx, coll)[sig]; ok {
				zap.L().Info("reusing existing index (post-conflict)",
					zap.String("collection", coll.Name()),
					zap.String("keys", sig))
				continue
			}
		}
		if err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("created_name", created),
			zap.String("keys", sig),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
