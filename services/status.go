// services/status.go - Full status view assembly
package services

import (
	"time"

	"fodyquest/models"
)

// StatusAchievement is an unlocked catalog entry with its unlock timestamp.
type StatusAchievement struct {
	models.Achievement
	UnlockedAt *time.Time `json:"unlocked_at"`
}

// StatusTask is a completed catalog entry with its completion timestamp.
type StatusTask struct {
	models.Task
	CompletedAt *time.Time `json:"completed_at"`
}

type AchievementStatus struct {
	Unlocked int                 `json:"unlocked"`
	Total    int                 `json:"total"`
	List     []StatusAchievement `json:"list"`
}

type TaskStatus struct {
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	List      []StatusTask `json:"list"`
}

type UsageCounters struct {
	TotalUploads int `json:"total_uploads"`
	TotalNotes   int `json:"total_notes"`
}

// Status is the full per-token progression view. Level fields are derived
// from points on every call, never stored.
type Status struct {
	Token             string            `json:"token"`
	Points            int               `json:"points"`
	Level             int               `json:"level"`
	LevelProgress     float64           `json:"level_progress"`
	PointsToNextLevel int               `json:"points_to_next_level"`
	NextLevelPoints   int               `json:"next_level_points"`
	Achievements      AchievementStatus `json:"achievements"`
	Tasks             TaskStatus        `json:"tasks"`
	Stats             UsageCounters     `json:"stats"`
	Settings          map[string]any    `json:"settings"`
	CreatedAt         time.Time         `json:"created_at"`
	LastActive        time.Time         `json:"last_active"`
}

// Status assembles the full view for a token, lazily creating the record on
// first reference.
func (p *Progression) Status(token string) (*Status, error) {
	user, err := p.store.GetOrCreate(token)
	if err != nil {
		return nil, err
	}

	unlocks, err := p.store.Unlocks(token)
	if err != nil {
		return nil, err
	}
	achievements := make([]StatusAchievement, 0, len(unlocks))
	for _, row := range unlocks {
		ach, ok := p.catalog.GetAchievement(row.AchievementID)
		if !ok {
			continue // unlocked under an older catalog version
		}
		at := row.UnlockedAt
		achievements = append(achievements, StatusAchievement{Achievement: ach, UnlockedAt: &at})
	}

	completions, err := p.store.Completions(token)
	if err != nil {
		return nil, err
	}
	tasks := make([]StatusTask, 0, len(completions))
	for _, row := range completions {
		task, ok := p.catalog.GetTask(row.TaskID)
		if !ok {
			continue
		}
		at := row.CompletedAt
		tasks = append(tasks, StatusTask{Task: task, CompletedAt: &at})
	}

	settings := map[string]any(user.Settings)
	if settings == nil {
		settings = map[string]any{}
	}

	return &Status{
		Token:             user.Token,
		Points:            user.Points,
		Level:             Level(user.Points),
		LevelProgress:     LevelProgress(user.Points),
		PointsToNextLevel: PointsToNextLevel(user.Points),
		NextLevelPoints:   NextLevelPoints(user.Points),
		Achievements: AchievementStatus{
			Unlocked: len(achievements),
			Total:    len(p.catalog.Achievements()),
			List:     achievements,
		},
		Tasks: TaskStatus{
			Completed: len(tasks),
			Total:     len(p.catalog.Tasks()),
			List:      tasks,
		},
		Stats: UsageCounters{
			TotalUploads: user.TotalUploads,
			TotalNotes:   user.TotalNotes,
		},
		Settings:   settings,
		CreatedAt:  user.CreatedAt,
		LastActive: user.LastActive,
	}, nil
}
