// services/progression_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fodyquest/models"
)

func TestAwardPoints(t *testing.T) {
	p, _, db := newTestProgression(t)

	res, err := p.AwardPoints("token-award-1", 10, "photo_upload", map[string]any{"photo_id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, 10, res.PointsAdded)
	assert.Equal(t, 10, res.TotalPoints)
	assert.Equal(t, 1, res.Level)
	assert.False(t, res.LeveledUp)

	// Running total accumulates across calls.
	res, err = p.AwardPoints("token-award-1", 5, "osm_note_create", nil)
	require.NoError(t, err)
	assert.Equal(t, 15, res.TotalPoints)

	// Every award leaves a ledger entry.
	var entries []models.PointEntry
	require.NoError(t, db.Where("token = ?", "token-award-1").Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, "photo_upload", entries[0].Action)
	assert.Equal(t, 10, entries[0].Amount)
	assert.Equal(t, "osm_note_create", entries[1].Action)

	// Counters track upload and note actions.
	var user models.User
	require.NoError(t, db.First(&user, "token = ?", "token-award-1").Error)
	assert.Equal(t, 1, user.TotalUploads)
	assert.Equal(t, 1, user.TotalNotes)
}

func TestAwardPointsRejectsNonPositiveAmount(t *testing.T) {
	p, _, db := newTestProgression(t)

	_, err := p.AwardPoints("token-award-2", 0, "photo_upload", nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = p.AwardPoints("token-award-2", -5, "photo_upload", nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// The rejected award must not create the user or any ledger rows.
	var userCount, entryCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.PointEntry{}).Count(&entryCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, entryCount)
}

func TestAwardPointsDefaultsAction(t *testing.T) {
	p, _, db := newTestProgression(t)

	_, err := p.AwardPoints("token-award-3", 3, "", nil)
	require.NoError(t, err)

	var entry models.PointEntry
	require.NoError(t, db.First(&entry, "token = ?", "token-award-3").Error)
	assert.Equal(t, "general", entry.Action)
}

func TestAwardPointsLevelUp(t *testing.T) {
	p, _, _ := newTestProgression(t)

	res, err := p.AwardPoints("token-award-4", 99, "general", nil)
	require.NoError(t, err)
	assert.False(t, res.LeveledUp)

	res, err = p.AwardPoints("token-award-4", 1, "general", nil)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.Level)
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	p, _, db := newTestProgression(t)

	res, err := p.UnlockAchievement("token-unlock", "first_photo")
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Equal(t, 100, res.PointsEarned)
	assert.False(t, res.UnlockedAt.IsZero())

	// Second unlock is a no-op, not an error.
	res, err = p.UnlockAchievement("token-unlock", "first_photo")
	require.NoError(t, err)
	assert.False(t, res.Granted)
	assert.Zero(t, res.PointsEarned)

	// Exactly one unlock row, one ledger entry, one reward.
	var unlockCount, entryCount int64
	require.NoError(t, db.Model(&models.UserAchievement{}).
		Where("token = ? AND achievement_id = ?", "token-unlock", "first_photo").
		Count(&unlockCount).Error)
	require.NoError(t, db.Model(&models.PointEntry{}).
		Where("token = ?", "token-unlock").Count(&entryCount).Error)
	assert.EqualValues(t, 1, unlockCount)
	assert.EqualValues(t, 1, entryCount)

	var user models.User
	require.NoError(t, db.First(&user, "token = ?", "token-unlock").Error)
	assert.Equal(t, 100, user.Points)
}

func TestUnlockUnknownAchievement(t *testing.T) {
	p, _, _ := newTestProgression(t)

	_, err := p.UnlockAchievement("token-unlock-2", "no-such-achievement")
	assert.ErrorIs(t, err, ErrAchievementNotFound)
}

func TestCompleteTaskIdempotent(t *testing.T) {
	p, _, db := newTestProgression(t)

	res, err := p.CompleteTask("token-task-1", "task_explore_map")
	require.NoError(t, err)
	assert.True(t, res.Granted)
	assert.Equal(t, 25, res.PointsEarned)

	res, err = p.CompleteTask("token-task-1", "task_explore_map")
	require.NoError(t, err)
	assert.False(t, res.Granted)

	var user models.User
	require.NoError(t, db.First(&user, "token = ?", "token-task-1").Error)
	assert.Equal(t, 25, user.Points)

	_, err = p.CompleteTask("token-task-1", "no-such-task")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateSettingsMerges(t *testing.T) {
	p, _, _ := newTestProgression(t)

	settings, err := p.UpdateSettings("token-settings", map[string]any{"a": 1.0, "b": 2.0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, settings["a"])

	settings, err = p.UpdateSettings("token-settings", map[string]any{"b": 3.0, "c": 4.0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, settings["a"])
	assert.Equal(t, 3.0, settings["b"])
	assert.Equal(t, 4.0, settings["c"])

	// Defaults survive merges unless overwritten.
	assert.Equal(t, true, settings["gamification_enabled"])
}

func TestInitializeGrantsFirstLoginOnce(t *testing.T) {
	p, _, db := newTestProgression(t)

	status, err := p.Initialize("token-init-1", map[string]any{"platform": "android"})
	require.NoError(t, err)
	assert.Equal(t, 1, status.Achievements.Unlocked)
	assert.Equal(t, FirstLoginAchievementID, status.Achievements.List[0].ID)
	assert.Equal(t, 50, status.Points)

	// Replaying initialize changes nothing.
	status, err = p.Initialize("token-init-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Achievements.Unlocked)
	assert.Equal(t, 50, status.Points)

	var entryCount int64
	require.NoError(t, db.Model(&models.PointEntry{}).
		Where("token = ?", "token-init-1").Count(&entryCount).Error)
	assert.EqualValues(t, 1, entryCount)
}

func TestStatusView(t *testing.T) {
	p, _, _ := newTestProgression(t)

	_, err := p.AwardPoints("token-status", 120, "photo_upload", nil)
	require.NoError(t, err)
	_, err = p.UnlockAchievement("token-status", "map_navigation")
	require.NoError(t, err)
	_, err = p.CompleteTask("token-status", "task_check_stats")
	require.NoError(t, err)

	status, err := p.Status("token-status")
	require.NoError(t, err)
	assert.Equal(t, "token-status", status.Token)
	assert.Equal(t, 160, status.Points) // 120 + 25 + 15
	assert.Equal(t, 2, status.Level)
	assert.Equal(t, 1, status.Achievements.Unlocked)
	assert.Equal(t, len(defaultAchievements), status.Achievements.Total)
	assert.Equal(t, 1, status.Tasks.Completed)
	assert.Equal(t, len(defaultTasks), status.Tasks.Total)
	assert.Equal(t, 1, status.Stats.TotalUploads)
	assert.Equal(t, true, status.Settings["gamification_enabled"])
	assert.False(t, status.CreatedAt.IsZero())
	assert.False(t, status.LastActive.IsZero())
}

func TestTokenValidation(t *testing.T) {
	p, _, _ := newTestProgression(t)

	_, err := p.Status("")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = p.AwardPoints("short", 10, "general", nil)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
