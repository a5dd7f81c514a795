// models/user.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is one progression record, keyed by the opaque client token.
// Points is the running total of the point_entries ledger; it is never
// recomputed from unlocked achievements or completed tasks.
type User struct {
	Token        string            `gorm:"primaryKey;size:64" json:"token"`
	Points       int               `gorm:"default:0" json:"points"`
	TotalUploads int               `gorm:"default:0" json:"total_uploads"`
	TotalNotes   int               `gorm:"default:0" json:"total_notes"`
	Settings     datatypes.JSONMap `json:"settings"`
	CreatedAt    time.Time         `json:"created_at"`
	LastActive   time.Time         `json:"last_active"`

	Achievements []UserAchievement `gorm:"foreignKey:Token;references:Token" json:"achievements,omitempty"`
	Tasks        []UserTask        `gorm:"foreignKey:Token;references:Token" json:"tasks,omitempty"`
}
