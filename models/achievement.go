// models/achievement.go
package models

import "time"

type Achievement struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `json:"icon"`
	Points      int    `gorm:"default:0" json:"points"`
	Category    string `gorm:"index" json:"category"` // milestone, upload, exploration, note, special

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserAchievement records a single unlock. The auto-increment ID preserves
// unlock order for display.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Token         string    `gorm:"not null;index;size:64" json:"token"`
	AchievementID string    `gorm:"not null;index;size:64" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
