// models/task.go
package models

import "time"

type Task struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Points      int    `gorm:"default:0" json:"points"`
	Icon        string `json:"icon"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserTask records a single task completion, analogous to UserAchievement.
type UserTask struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Token       string    `gorm:"not null;index;size:64" json:"token"`
	TaskID      string    `gorm:"not null;index;size:64" json:"task_id"`
	CompletedAt time.Time `json:"completed_at"`
}
