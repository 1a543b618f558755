// internal/domain/models/collections.go
package models

// Collection names. These match the denormalized layout inherited from the
// original Firestore data, so field and collection names stay camelCase.
const (
	CollPlayerAccounts = "playerAccounts"
	CollCoachAccounts  = "coachAccounts"
	CollUsers          = "users"
	CollUserProfiles   = "userProfiles"
	CollPlayers        = "players"
	CollTeams          = "teams"
	CollLineups        = "lineups"
	CollResults        = "results"
	CollStatistics     = "statistics"
	CollAccountChanges = "accountChanges"
	CollAuditLogs      = "auditLogs"
)

// Account types accepted by the update flow.
const (
	AccountTypePlayer = "player"
	AccountTypeCoach  = "coach"
	AccountTypeUser   = "user"
	AccountTypeAdmin  = "admin"
)

// AccountCollections are the account-like collections scanned for duplicates.
var AccountCollections = []string{
	CollPlayerAccounts,
	CollCoachAccounts,
	CollUsers,
	CollUserProfiles,
}

// DefaultBackupCollections is the set exported when a backup request names none.
var DefaultBackupCollections = []string{
	CollPlayerAccounts,
	CollCoachAccounts,
	CollUsers,
	CollUserProfiles,
	CollPlayers,
	CollTeams,
	CollLineups,
	CollResults,
	CollStatistics,
}

// AccountCollection returns the canonical collection for an account type,
// or "" when the type is unknown.
func AccountCollection(accountType string) string {
	switch accountType {
	case AccountTypePlayer:
		return CollPlayerAccounts
	case AccountTypeCoach:
		return CollCoachAccounts
	case AccountTypeUser, AccountTypeAdmin:
		return CollUsers
	default:
		return ""
	}
}

// TypeTag returns the short role tag used in reports for a source collection.
func TypeTag(collection string) string {
	switch collection {
	case CollPlayerAccounts, CollPlayers:
		return "player"
	case CollCoachAccounts:
		return "coach"
	case CollUsers:
		return "user"
	case CollUserProfiles:
		return "profile"
	default:
		return collection
	}
}
