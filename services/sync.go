// services/sync.go - Reconciliation of client-held progression snapshots
package services

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fodyquest/models"
)

// SyncPayload is the client-held snapshot submitted for reconciliation.
type SyncPayload struct {
	Achievements   []string       `json:"achievements"`
	CompletedTasks []string       `json:"completed_tasks"`
	Settings       map[string]any `json:"settings"`
}

// SyncResult is the delta produced by one reconciliation: only the items
// granted by this call, plus the resulting full status.
type SyncResult struct {
	NewAchievements []StatusAchievement `json:"new_achievements"`
	NewTasks        []StatusTask        `json:"new_tasks"`
	PointsEarned    int                 `json:"points_earned"`
	Status          *Status             `json:"status"`
}

// Sync merges a client snapshot into server state through the same grant
// path as direct unlocks, so replaying an identical payload yields an empty
// delta. Ids missing from the catalog are skipped without aborting the
// batch; the settings merge happens last and never affects point state. All
// mutations commit as a single logical update.
func (p *Progression) Sync(token string, payload SyncPayload) (*SyncResult, error) {
	res := &SyncResult{
		NewAchievements: []StatusAchievement{},
		NewTasks:        []StatusTask{},
	}
	_, err := p.store.Apply(token, func(tx *gorm.DB, user *models.User) error {
		for _, id := range payload.Achievements {
			ach, ok := p.catalog.GetAchievement(id)
			if !ok {
				continue
			}
			granted, at, err := grantAchievement(tx, user, ach)
			if err != nil {
				return err
			}
			if granted {
				unlockedAt := at
				res.NewAchievements = append(res.NewAchievements, StatusAchievement{Achievement: ach, UnlockedAt: &unlockedAt})
				res.PointsEarned += ach.Points
			}
		}
		for _, id := range payload.CompletedTasks {
			task, ok := p.catalog.GetTask(id)
			if !ok {
				continue
			}
			granted, at, err := grantTask(tx, user, task)
			if err != nil {
				return err
			}
			if granted {
				completedAt := at
				res.NewTasks = append(res.NewTasks, StatusTask{Task: task, CompletedAt: &completedAt})
				res.PointsEarned += task.Points
			}
		}
		if payload.Settings != nil {
			if user.Settings == nil {
				user.Settings = datatypes.JSONMap{}
			}
			for k, v := range payload.Settings {
				user.Settings[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	status, err := p.Status(token)
	if err != nil {
		return nil, err
	}
	res.Status = status
	return res, nil
}
