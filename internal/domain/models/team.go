// internal/domain/models/team.go
package models

// Team embeds lightweight copies of its coach and players. The copies are
// not references: they must be patched whenever the account changes.
type Team struct {
	ID      string       `bson:"id,omitempty" json:"id"`
	Name    string       `bson:"name" json:"name"`
	Color   string       `bson:"color,omitempty" json:"color,omitempty"`
	Logo    string       `bson:"logo,omitempty" json:"logo,omitempty"`
	CoachID string       `bson:"coachId,omitempty" json:"coachId,omitempty"`
	Coach   *TeamCoach   `bson:"coach,omitempty" json:"coach,omitempty"`
	Players []TeamPlayer `bson:"players,omitempty" json:"players,omitempty"`
}

// TeamCoach is the denormalized coach sub-object on a team.
type TeamCoach struct {
	ID        string `bson:"id,omitempty" json:"id,omitempty"`
	FirstName string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	Email     string `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// TeamPlayer is one roster entry in Team.Players.
type TeamPlayer struct {
	ID           string `bson:"id" json:"id"`
	FirstName    string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName     string `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Nickname     string `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Position     string `bson:"position,omitempty" json:"position,omitempty"`
	JerseyNumber *int   `bson:"jerseyNumber,omitempty" json:"jerseyNumber,omitempty"`
}
