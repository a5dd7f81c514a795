// services/catalog_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fodyquest/models"
)

func TestCatalogSeedsDefaultsOnce(t *testing.T) {
	db := newTestDB(t)

	catalog := NewCatalog(db)
	require.NoError(t, catalog.Load())
	assert.Len(t, catalog.Achievements(), len(defaultAchievements))
	assert.Len(t, catalog.Tasks(), len(defaultTasks))

	// Reloading does not duplicate seeded rows.
	require.NoError(t, catalog.Load())
	var count int64
	require.NoError(t, db.Model(&models.Achievement{}).Count(&count).Error)
	assert.EqualValues(t, len(defaultAchievements), count)

	ach, ok := catalog.GetAchievement(FirstLoginAchievementID)
	require.True(t, ok)
	assert.Equal(t, 50, ach.Points)

	_, ok = catalog.GetAchievement("does-not-exist")
	assert.False(t, ok)
}

func TestCatalogReloadPicksUpChanges(t *testing.T) {
	db := newTestDB(t)

	catalog := NewCatalog(db)
	require.NoError(t, catalog.Load())

	custom := models.Achievement{ID: "seasonal_2026", Name: "Season Opener", Points: 60, Category: "special"}
	require.NoError(t, db.Create(&custom).Error)

	_, ok := catalog.GetAchievement("seasonal_2026")
	assert.False(t, ok, "cache must not see uncommitted reloads")

	require.NoError(t, catalog.Load())
	got, ok := catalog.GetAchievement("seasonal_2026")
	require.True(t, ok)
	assert.Equal(t, 60, got.Points)
}
