// services/level_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelThresholds(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{150, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{1599, 4},
		{1600, 5},
		{2500, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, Level(tc.points), "points=%d", tc.points)
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for p := 1; p <= 3000; p++ {
		cur := Level(p)
		assert.GreaterOrEqual(t, cur, prev, "level dropped at %d points", p)
		prev = cur
	}
}

func TestLevelProgress(t *testing.T) {
	assert.Equal(t, 0.0, LevelProgress(0))
	assert.Equal(t, 50.0, LevelProgress(50))
	assert.Equal(t, 99.0, LevelProgress(99))
	assert.Equal(t, 0.0, LevelProgress(100))
	assert.Equal(t, 50.0, LevelProgress(150))

	// Saturates once points pass the display band for the current level.
	assert.Equal(t, 100.0, LevelProgress(250))
}

func TestPointsToNextLevel(t *testing.T) {
	assert.Equal(t, 100, PointsToNextLevel(0))
	assert.Equal(t, 1, PointsToNextLevel(99))
	assert.Equal(t, 100, PointsToNextLevel(100))
	assert.Equal(t, 50, PointsToNextLevel(150))

	// Never negative, even past the display band.
	assert.Equal(t, 0, PointsToNextLevel(250))
}

func TestNextLevelPoints(t *testing.T) {
	assert.Equal(t, 100, NextLevelPoints(0))
	assert.Equal(t, 200, NextLevelPoints(100))
	assert.Equal(t, 300, NextLevelPoints(400))
}
