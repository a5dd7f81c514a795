// services/leaderboard_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fodyquest/models"
	"gorm.io/datatypes"
)

func TestLeaderboardOrdering(t *testing.T) {
	_, _, db := newTestProgression(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	users := []models.User{
		{Token: "aaaaaaaa-lb-1", Points: 300, Settings: datatypes.JSONMap{}, CreatedAt: base, LastActive: base},
		{Token: "bbbbbbbb-lb-2", Points: 100, Settings: datatypes.JSONMap{}, CreatedAt: base.Add(time.Minute), LastActive: base},
		{Token: "cccccccc-lb-3", Points: 300, Settings: datatypes.JSONMap{}, CreatedAt: base.Add(2 * time.Minute), LastActive: base},
		{Token: "dddddddd-lb-4", Points: 50, Settings: datatypes.JSONMap{}, CreatedAt: base.Add(3 * time.Minute), LastActive: base},
	}
	require.NoError(t, db.Create(&users).Error)

	board, err := NewLeaderboardCompiler(db).Compile()
	require.NoError(t, err)
	require.Len(t, board.Entries, 4)
	assert.EqualValues(t, 4, board.TotalUsers)

	// Points descending, ties broken by earliest creation.
	assert.Equal(t, "aaaaaaaa...", board.Entries[0].Token)
	assert.Equal(t, 300, board.Entries[0].Points)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "cccccccc...", board.Entries[1].Token)
	assert.Equal(t, 300, board.Entries[1].Points)
	assert.Equal(t, 2, board.Entries[1].Rank)
	assert.Equal(t, 100, board.Entries[2].Points)
	assert.Equal(t, 50, board.Entries[3].Points)
	assert.Equal(t, 4, board.Entries[3].Rank)
}

func TestLeaderboardTruncatesToTop(t *testing.T) {
	_, _, db := newTestProgression(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	users := make([]models.User, 0, leaderboardSize+10)
	for i := 0; i < leaderboardSize+10; i++ {
		users = append(users, models.User{
			Token:      fmt.Sprintf("token-lb-%04d", i),
			Points:     i,
			Settings:   datatypes.JSONMap{},
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
			LastActive: base,
		})
	}
	require.NoError(t, db.CreateInBatches(&users, 50).Error)

	board, err := NewLeaderboardCompiler(db).Compile()
	require.NoError(t, err)
	assert.Len(t, board.Entries, leaderboardSize)
	assert.EqualValues(t, leaderboardSize+10, board.TotalUsers)
	assert.Equal(t, leaderboardSize+9, board.Entries[0].Points)
}

func TestLeaderboardCountsAchievements(t *testing.T) {
	p, _, db := newTestProgression(t)

	_, err := p.UnlockAchievement("token-lb-count", "first_photo")
	require.NoError(t, err)
	_, err = p.UnlockAchievement("token-lb-count", "night_owl")
	require.NoError(t, err)

	board, err := NewLeaderboardCompiler(db).Compile()
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 2, board.Entries[0].Achievements)
}

func TestAnonymizeToken(t *testing.T) {
	assert.Equal(t, "abcdefgh...", AnonymizeToken("abcdefgh12345678"))
	assert.Equal(t, "abcdefgh...", AnonymizeToken("abcdefgh"))
	assert.Equal(t, "abc...", AnonymizeToken("abc"))
}
