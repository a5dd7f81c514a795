// models/ledger.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// PointEntry is one row of the append-only points ledger. Every point-awarding
// event (direct award, achievement unlock, task completion) appends exactly
// one entry; the sum of a token's entries equals users.points.
type PointEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Token     string         `gorm:"not null;index;size:64" json:"token"`
	Action    string         `gorm:"not null;size:64" json:"action"`
	Amount    int            `gorm:"not null" json:"amount"`
	Details   datatypes.JSON `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
