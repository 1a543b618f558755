// internal/domain/models/account.go
package models

import (
	"strings"
	"time"
)

// Account is the shared shape of playerAccounts, coachAccounts, users and
// userProfiles documents. Not every collection fills every field: only
// players carry Position and JerseyNumber, and profiles carry FullName.
//
// NOTE:
//   - Email is the case-insensitive logical key. It is not unique; the same
//     person usually has a row in several collections.
type Account struct {
	ID           string     `bson:"id,omitempty" json:"id"`
	UID          string     `bson:"uid,omitempty" json:"uid,omitempty"`
	Email        string     `bson:"email" json:"email"`
	FirstName    string     `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     string     `bson:"lastName,omitempty" json:"lastName,omitempty"`
	FullName     string     `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Role         string     `bson:"role,omitempty" json:"role,omitempty"`
	TeamID       string     `bson:"teamId,omitempty" json:"teamId,omitempty"`
	TeamName     string     `bson:"teamName,omitempty" json:"teamName,omitempty"`
	Position     string     `bson:"position,omitempty" json:"position,omitempty"`
	JerseyNumber *int       `bson:"jerseyNumber,omitempty" json:"jerseyNumber,omitempty"`
	Phone        string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Nickname     string     `bson:"nickname,omitempty" json:"nickname,omitempty"`
	BirthDate    string     `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	Height       string     `bson:"height,omitempty" json:"height,omitempty"`
	CreatedAt    *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	LastLogin    *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	UpdatedAt    *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DisplayName is the name shown in rosters and lineups.
func (a Account) DisplayName() string {
	if n := DisplayName(a.FirstName, a.LastName); n != "" {
		return n
	}
	return strings.TrimSpace(a.FullName)
}

// DisplayName joins first and last name the way rosters print them.
func DisplayName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
