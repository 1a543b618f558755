package propagate

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/dalemusser/leaguehub/internal/app/system/normalize"
	"github.com/dalemusser/leaguehub/internal/domain/models"
	"go.uber.org/zap"
)

// Fields copied into each kind of embedded summary.
var (
	coachCopyFields  = []string{"firstName", "lastName", "email", "phone"}
	playerCopyFields = []string{"firstName", "lastName", "email", "phone", "nickname", "position", "jerseyNumber"}
)

// plan accumulates the writes of one update. Reads are not snapshotted;
// the batch reflects whatever each read returned.
type plan struct {
	p             *Propagator
	req           Request
	updates       Updates
	fields        map[string]any
	canonical     map[string]any
	haveCanonical bool
	storedEmail   string
	batch         *docs.Batch
	now           time.Time
	patchedTeams  map[string]bool
}

func (pl *plan) emailChanged() bool {
	return pl.updates.Email != nil && pl.storedEmail != "" && *pl.updates.Email != pl.storedEmail
}

func (pl *plan) isPlayer() bool { return pl.req.AccountType == models.AccountTypePlayer }

// displayName merges the update over the stored first and last name.
func (pl *plan) displayName() string {
	first := docs.String(pl.canonical, "firstName")
	last := docs.String(pl.canonical, "lastName")
	if pl.updates.FirstName != nil {
		first = *pl.updates.FirstName
	}
	if pl.updates.LastName != nil {
		last = *pl.updates.LastName
	}
	return models.DisplayName(first, last)
}

func (pl *plan) teamID() string {
	if pl.req.TeamID != "" {
		return pl.req.TeamID
	}
	return docs.String(pl.canonical, "teamId")
}

func (pl *plan) teamName() string {
	if pl.updates.TeamName != nil {
		return *pl.updates.TeamName
	}
	return docs.String(pl.canonical, "teamName")
}

// load reads a whole collection, degrading a failed read to empty.
func (pl *plan) load(ctx context.Context, coll string) ([]docs.Doc, error) {
	all, err := pl.p.Store.All(ctx, coll)
	return pl.degrade(ctx, coll, all, err)
}

func (pl *plan) find(ctx context.Context, coll, field string, value any) ([]docs.Doc, error) {
	found, err := pl.p.Store.FindEq(ctx, coll, field, value)
	return pl.degrade(ctx, coll, found, err)
}

func (pl *plan) degrade(ctx context.Context, coll string, d []docs.Doc, err error) ([]docs.Doc, error) {
	if err == nil {
		return d, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	pl.p.Log.Warn("account update: collection read failed; skipping",
		zap.String("collection", coll), zap.Error(err))
	return nil, nil
}

func (pl *plan) build(ctx context.Context) error {
	pl.patchedTeams = make(map[string]bool)
	steps := []func(context.Context) error{
		pl.canonicalRecord,
		pl.playerMirror,
		pl.profiles,
		pl.referencedTeam,
		pl.teamsByName,
		pl.lineups,
		pl.results,
		pl.statistics,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (pl *plan) withTimestamp(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out["updatedAt"] = pl.now
	return out
}

func (pl *plan) canonicalRecord(ctx context.Context) error {
	coll := models.AccountCollection(pl.req.AccountType)
	if coll == "" || !pl.haveCanonical {
		return nil
	}
	pl.batch.Set(coll, pl.req.AccountID, pl.withTimestamp(pl.fields))
	return nil
}

// playerMirror patches the legacy players collection. Documents are
// matched by the new email and by the stored one, so the mirror is found
// whether or not the email changed or the sync already ran.
func (pl *plan) playerMirror(ctx context.Context) error {
	if !pl.isPlayer() {
		return nil
	}
	keys := make(map[string]bool)
	if pl.updates.Email != nil {
		keys[*pl.updates.Email] = true
	}
	if pl.storedEmail != "" {
		keys[pl.storedEmail] = true
	}
	if len(keys) == 0 {
		return nil
	}
	all, err := pl.load(ctx, models.CollPlayers)
	if err != nil {
		return err
	}
	for _, d := range all {
		if keys[normalize.Email(docs.String(d.Fields, "email"))] {
			pl.batch.Set(models.CollPlayers, d.ID, pl.withTimestamp(pl.fields))
		}
	}
	return nil
}

// profiles patches userProfiles keyed by the auth uid, either as the
// document id or as a uid field.
func (pl *plan) profiles(ctx context.Context) error {
	uid := pl.req.UID
	if uid == "" {
		uid = docs.String(pl.canonical, "uid")
	}
	if uid == "" {
		return nil
	}
	patch := pl.withTimestamp(pl.fields)
	delete(patch, "jerseyNumber")
	delete(patch, "position")
	if pl.updates.FirstName != nil && pl.updates.LastName != nil {
		patch["fullName"] = models.DisplayName(*pl.updates.FirstName, *pl.updates.LastName)
	}

	ids := make(map[string]bool)
	var order []string
	d, err := pl.p.Store.Get(ctx, models.CollUserProfiles, uid)
	switch {
	case err == nil:
		ids[d.ID] = true
		order = append(order, d.ID)
	case errors.Is(err, docs.ErrNotFound):
	default:
		if _, err := pl.degrade(ctx, models.CollUserProfiles, nil, err); err != nil {
			return err
		}
	}
	found, err := pl.find(ctx, models.CollUserProfiles, "uid", uid)
	if err != nil {
		return err
	}
	for _, d := range found {
		if !ids[d.ID] {
			ids[d.ID] = true
			order = append(order, d.ID)
		}
	}
	for _, id := range order {
		pl.batch.Set(models.CollUserProfiles, id, patch)
	}
	return nil
}

func (pl *plan) referencedTeam(ctx context.Context) error {
	id := pl.teamID()
	if id == "" {
		return nil
	}
	d, err := pl.p.Store.Get(ctx, models.CollTeams, id)
	if errors.Is(err, docs.ErrNotFound) {
		return nil
	}
	if err != nil {
		_, err = pl.degrade(ctx, models.CollTeams, nil, err)
		return err
	}
	patch := pl.teamPatch(d.Fields)
	if name := pl.updates.TeamName; name != nil && docs.String(d.Fields, "name") != *name {
		patch["name"] = *name
	}
	pl.batch.Set(models.CollTeams, d.ID, patch)
	pl.patchedTeams[d.ID] = true
	return nil
}

// teamsByName patches every team whose stored name equals the account's
// team name. Two unrelated teams sharing a name are both patched.
func (pl *plan) teamsByName(ctx context.Context) error {
	name := pl.teamName()
	if name == "" {
		return nil
	}
	found, err := pl.find(ctx, models.CollTeams, "name", name)
	if err != nil {
		return err
	}
	for _, d := range found {
		if pl.patchedTeams[d.ID] {
			continue
		}
		pl.batch.Set(models.CollTeams, d.ID, pl.teamPatch(d.Fields))
		pl.patchedTeams[d.ID] = true
	}
	return nil
}

// teamPatch updates the embedded coach when it is this account, and the
// roster entry matched by id or email. The roster is replaced whole.
func (pl *plan) teamPatch(team map[string]any) map[string]any {
	patch := make(map[string]any)
	id := pl.req.AccountID

	coach := docs.Map(team, "coach")
	if coach == nil && docs.String(team, "coachId") == id {
		// Dotted paths cannot create fields under a missing or null coach.
		if copied := pick(pl.fields, coachCopyFields...); len(copied) > 0 {
			patch["coach"] = pl.newCoach(copied)
		}
	} else if docs.String(team, "coachId") == id || (coach != nil && docs.String(coach, "id") == id) {
		for k, v := range pick(pl.fields, coachCopyFields...) {
			patch["coach."+k] = v
		}
		if len(patch) > 0 && pl.updates.nameChanged() {
			patch["coach.name"] = pl.displayName()
		}
	}

	roster := docs.Slice(team, "players")
	for i, item := range roster {
		entry, ok := item.(map[string]any)
		if !ok || !pl.sameAccount(entry) {
			continue
		}
		copyFields := pick(pl.fields, playerCopyFields...)
		if len(copyFields) == 0 {
			break
		}
		next := docs.CloneSlice(roster)
		replaced := next[i].(map[string]any)
		for k, v := range copyFields {
			replaced[k] = v
		}
		if pl.updates.nameChanged() {
			replaced["name"] = pl.displayName()
		}
		patch["players"] = next
		break
	}
	return patch
}

// newCoach builds a whole coach sub-object from the stored account with
// the copied update fields laid over it.
func (pl *plan) newCoach(copied map[string]any) map[string]any {
	coach := map[string]any{"id": pl.req.AccountID}
	for _, k := range coachCopyFields {
		if v := docs.String(pl.canonical, k); v != "" {
			coach[k] = v
		}
	}
	for k, v := range copied {
		coach[k] = v
	}
	if name := pl.displayName(); name != "" {
		coach["name"] = name
	}
	return coach
}

func (pl *plan) sameAccount(entry map[string]any) bool {
	if docs.String(entry, "id") == pl.req.AccountID {
		return true
	}
	email := normalize.Email(docs.String(entry, "email"))
	if email == "" {
		return false
	}
	if email == pl.storedEmail {
		return true
	}
	return pl.updates.Email != nil && email == *pl.updates.Email
}

// lineups patches every starter and substitute slot held by the player.
func (pl *plan) lineups(ctx context.Context) error {
	if !pl.isPlayer() {
		return nil
	}
	slot := pick(pl.fields, "position", "jerseyNumber")
	if pl.updates.nameChanged() {
		slot["name"] = pl.displayName()
	}
	if len(slot) == 0 {
		return nil
	}
	all, err := pl.load(ctx, models.CollLineups)
	if err != nil {
		return err
	}
	for _, d := range all {
		patch := make(map[string]any)
		for _, field := range []string{"starters", "substitutes"} {
			if next, ok := patchEntries(docs.Slice(d.Fields, field), "id", pl.req.AccountID, slot); ok {
				patch[field] = next
			}
		}
		pl.batch.Set(models.CollLineups, d.ID, patch)
	}
	return nil
}

// results renames team1Name/team2Name when they hold the raw team id, and
// patches scorer names.
func (pl *plan) results(ctx context.Context) error {
	teamID := pl.teamID()
	renameTeam := pl.updates.TeamName != nil && teamID != ""
	if !renameTeam && !pl.updates.nameChanged() {
		return nil
	}
	all, err := pl.load(ctx, models.CollResults)
	if err != nil {
		return err
	}
	for _, d := range all {
		patch := make(map[string]any)
		if renameTeam {
			for _, field := range []string{"team1Name", "team2Name"} {
				if docs.String(d.Fields, field) == teamID {
					patch[field] = *pl.updates.TeamName
				}
			}
		}
		if pl.updates.nameChanged() {
			scorer := map[string]any{"playerName": pl.displayName()}
			if next, ok := patchEntries(docs.Slice(d.Fields, "scorers"), "playerId", pl.req.AccountID, scorer); ok {
				patch["scorers"] = next
			}
		}
		pl.batch.Set(models.CollResults, d.ID, patch)
	}
	return nil
}

func (pl *plan) statistics(ctx context.Context) error {
	if !pl.isPlayer() {
		return nil
	}
	patch := make(map[string]any)
	if pl.updates.nameChanged() {
		patch["playerName"] = pl.displayName()
	}
	if pl.updates.TeamName != nil {
		patch["teamName"] = *pl.updates.TeamName
	}
	if len(patch) == 0 {
		return nil
	}
	found, err := pl.find(ctx, models.CollStatistics, "playerId", pl.req.AccountID)
	if err != nil {
		return err
	}
	for _, d := range found {
		pl.batch.Set(models.CollStatistics, d.ID, patch)
	}
	return nil
}

// patchEntries copies an array of objects and merges patch into every
// entry whose key field equals id. It reports whether anything matched.
func patchEntries(entries []any, key, id string, patch map[string]any) ([]any, bool) {
	var next []any
	for i, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok || docs.String(entry, key) != id {
			continue
		}
		if next == nil {
			next = docs.CloneSlice(entries)
		}
		target := next[i].(map[string]any)
		for k, v := range patch {
			target[k] = v
		}
	}
	return next, next != nil
}
