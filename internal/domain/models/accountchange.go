// internal/domain/models/accountchange.go
package models

import "time"

// AccountChange is the outbox record written in the same batch as a
// propagated account update. It names the fields that changed and the
// collections the batch touched, so a later projection job can replay it.
type AccountChange struct {
	ID          string         `bson:"id,omitempty" json:"id"`
	AccountID   string         `bson:"accountId" json:"accountId"`
	AccountType string         `bson:"accountType" json:"accountType"`
	Fields      map[string]any `bson:"fields" json:"fields"`
	Collections []string       `bson:"collections" json:"collections"`
	EmailSynced bool           `bson:"emailSynced" json:"emailSynced"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}
