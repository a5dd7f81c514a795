// services/progression.go - Business rules: awards, unlocks, settings, status
package services

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fodyquest/models"
)

// Progression implements the engine's business rules on top of the user
// store and the catalog. Every mutation goes through UserStore.Apply.
type Progression struct {
	store   *UserStore
	catalog *Catalog
}

func NewProgression(store *UserStore, catalog *Catalog) *Progression {
	return &Progression{store: store, catalog: catalog}
}

type AwardResult struct {
	PointsAdded int  `json:"points_added"`
	TotalPoints int  `json:"total_points"`
	Level       int  `json:"level"`
	LeveledUp   bool `json:"level_up"`
}

type UnlockResult struct {
	Granted      bool
	Achievement  models.Achievement
	PointsEarned int
	UnlockedAt   time.Time
}

type CompleteResult struct {
	Granted      bool
	Task         models.Task
	PointsEarned int
	CompletedAt  time.Time
}

// AwardPoints appends a ledger entry and bumps the running total. The
// photo_upload and osm_note_create actions also bump their usage counters.
func (p *Progression) AwardPoints(token string, amount int, action string, details map[string]any) (*AwardResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if action == "" {
		action = "general"
	}
	var res AwardResult
	_, err := p.store.Apply(token, func(tx *gorm.DB, user *models.User) error {
		oldPoints := user.Points
		if err := appendLedger(tx, user.Token, action, amount, details); err != nil {
			return err
		}
		user.Points += amount
		switch action {
		case "photo_upload":
			user.TotalUploads++
		case "osm_note_create":
			user.TotalNotes++
		}
		res = AwardResult{
			PointsAdded: amount,
			TotalPoints: user.Points,
			Level:       Level(user.Points),
			LeveledUp:   Level(user.Points) > Level(oldPoints),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UnlockAchievement grants an achievement once. A second call for the same
// token returns Granted=false and changes nothing.
func (p *Progression) UnlockAchievement(token, achievementID string) (*UnlockResult, error) {
	ach, ok := p.catalog.GetAchievement(achievementID)
	if !ok {
		return nil, ErrAchievementNotFound
	}
	var res UnlockResult
	_, err := p.store.Apply(token, func(tx *gorm.DB, user *models.User) error {
		granted, at, err := grantAchievement(tx, user, ach)
		if err != nil {
			return err
		}
		res = UnlockResult{Granted: granted, Achievement: ach, UnlockedAt: at}
		if granted {
			res.PointsEarned = ach.Points
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CompleteTask marks a task done once, symmetric to UnlockAchievement.
func (p *Progression) CompleteTask(token, taskID string) (*CompleteResult, error) {
	task, ok := p.catalog.GetTask(taskID)
	if !ok {
		return nil, ErrTaskNotFound
	}
	var res CompleteResult
	_, err := p.store.Apply(token, func(tx *gorm.DB, user *models.User) error {
		granted, at, err := grantTask(tx, user, task)
		if err != nil {
			return err
		}
		res = CompleteResult{Granted: granted, Task: task, CompletedAt: at}
		if granted {
			res.PointsEarned = task.Points
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSettings shallow-merges partial into the stored settings. Unknown
// keys are accepted and passed through opaquely.
func (p *Progression) UpdateSettings(token string, partial map[string]any) (map[string]any, error) {
	var settings map[string]any
	_, err := p.store.Apply(token, func(tx *gorm.DB, user *models.User) error {
		if user.Settings == nil {
			user.Settings = datatypes.JSONMap{}
		}
		for k, v := range partial {
			user.Settings[k] = v
		}
		settings = map[string]any(user.Settings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Initialize is the idempotent first-touch: it creates the record if needed
// and grants the first-login achievement through the regular unlock path, so
// repeated calls never double-award. Device info is accepted for forward
// compatibility and not persisted.
func (p *Progression) Initialize(token string, deviceInfo map[string]any) (*Status, error) {
	_ = deviceInfo
	if _, err := p.store.GetOrCreate(token); err != nil {
		return nil, err
	}
	if ach, ok := p.catalog.GetAchievement(FirstLoginAchievementID); ok {
		_, err := p.store.Apply(token, func(tx *gorm.DB, user *models.User) error {
			_, _, err := grantAchievement(tx, user, ach)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return p.Status(token)
}

// grantAchievement is the one path that unlocks an achievement: one unlock
// row, one ledger entry, one reward added to the running total. Returns
// granted=false when the achievement was already unlocked.
func grantAchievement(tx *gorm.DB, user *models.User, ach models.Achievement) (bool, time.Time, error) {
	var count int64
	if err := tx.Model(&models.UserAchievement{}).
		Where("token = ? AND achievement_id = ?", user.Token, ach.ID).
		Count(&count).Error; err != nil {
		return false, time.Time{}, err
	}
	if count > 0 {
		return false, time.Time{}, nil
	}
	now := time.Now().UTC()
	unlock := models.UserAchievement{Token: user.Token, AchievementID: ach.ID, UnlockedAt: now}
	if err := tx.Create(&unlock).Error; err != nil {
		return false, time.Time{}, err
	}
	if err := appendLedger(tx, user.Token, "achievement_unlock", ach.Points, map[string]any{"achievement_id": ach.ID}); err != nil {
		return false, time.Time{}, err
	}
	user.Points += ach.Points
	return true, now, nil
}

// grantTask is the task counterpart of grantAchievement.
func grantTask(tx *gorm.DB, user *models.User, task models.Task) (bool, time.Time, error) {
	var count int64
	if err := tx.Model(&models.UserTask{}).
		Where("token = ? AND task_id = ?", user.Token, task.ID).
		Count(&count).Error; err != nil {
		return false, time.Time{}, err
	}
	if count > 0 {
		return false, time.Time{}, nil
	}
	now := time.Now().UTC()
	completion := models.UserTask{Token: user.Token, TaskID: task.ID, CompletedAt: now}
	if err := tx.Create(&completion).Error; err != nil {
		return false, time.Time{}, err
	}
	if err := appendLedger(tx, user.Token, "task_complete", task.Points, map[string]any{"task_id": task.ID}); err != nil {
		return false, time.Time{}, err
	}
	user.Points += task.Points
	return true, now, nil
}

func appendLedger(tx *gorm.DB, token, action string, amount int, details map[string]any) error {
	entry := models.PointEntry{Token: token, Action: action, Amount: amount}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return err
		}
		entry.Details = datatypes.JSON(raw)
	}
	return tx.Create(&entry).Error
}
