// internal/domain/models/match.go
package models

import "time"

// Lineup is the per match+team selection. Starters and substitutes are
// copies of player data taken when the lineup was saved.
type Lineup struct {
	ID          string        `bson:"id,omitempty" json:"id"`
	MatchID     string        `bson:"matchId" json:"matchId"`
	TeamID      string        `bson:"teamId" json:"teamId"`
	Starters    []LineupEntry `bson:"starters" json:"starters"`
	Substitutes []LineupEntry `bson:"substitutes" json:"substitutes"`
}

// LineupEntry is one player slot in a lineup.
type LineupEntry struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Position     string `bson:"position,omitempty" json:"position,omitempty"`
	JerseyNumber *int   `bson:"jerseyNumber,omitempty" json:"jerseyNumber,omitempty"`
}

// MatchResult records the final score and who scored.
type MatchResult struct {
	ID        string     `bson:"id,omitempty" json:"id"`
	MatchID   string     `bson:"matchId" json:"matchId"`
	Team1Name string     `bson:"team1Name" json:"team1Name"`
	Team2Name string     `bson:"team2Name" json:"team2Name"`
	Score1    int        `bson:"score1" json:"score1"`
	Score2    int        `bson:"score2" json:"score2"`
	Scorers   []Scorer   `bson:"scorers,omitempty" json:"scorers,omitempty"`
	PlayedAt  *time.Time `bson:"playedAt,omitempty" json:"playedAt,omitempty"`
}

// Scorer is a goal entry on a result, holding a copy of the player's name.
type Scorer struct {
	PlayerID   string `bson:"playerId" json:"playerId"`
	PlayerName string `bson:"playerName" json:"playerName"`
	TeamID     string `bson:"teamId,omitempty" json:"teamId,omitempty"`
	Minute     int    `bson:"minute,omitempty" json:"minute,omitempty"`
}

// PlayerStatistics aggregates a player's season totals.
type PlayerStatistics struct {
	ID         string `bson:"id,omitempty" json:"id"`
	PlayerID   string `bson:"playerId" json:"playerId"`
	PlayerName string `bson:"playerName" json:"playerName"`
	TeamName   string `bson:"teamName,omitempty" json:"teamName,omitempty"`
	Goals      int    `bson:"goals" json:"goals"`
	Assists    int    `bson:"assists" json:"assists"`
	Matches    int    `bson:"matches" json:"matches"`
}
