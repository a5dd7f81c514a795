// services/level.go - Level calculation from accumulated points
package services

import "math"

// Level maps accumulated points to a level. Below 100 points everyone is
// level 1; past that the curve is Level = floor(sqrt(points / 100)) + 1,
// so level N starts at (N-1)^2 * 100 points.
func Level(points int) int {
	if points < 100 {
		return 1
	}
	return int(math.Sqrt(float64(points))/10) + 1
}

// LevelProgress returns progress toward the next level as 0-100, rounded to
// one decimal for display. Progress is measured against the display bands of
// 100 points per level; past the band it saturates at 100.
func LevelProgress(points int) float64 {
	level := Level(points)
	lo := (level - 1) * 100
	hi := level * 100
	if points >= hi {
		return 100
	}
	progress := float64(points-lo) / float64(hi-lo) * 100
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}
	return math.Round(progress*10) / 10
}

// NextLevelPoints returns the display threshold for the next level.
func NextLevelPoints(points int) int {
	return Level(points) * 100
}

// PointsToNextLevel returns how many points remain until the next level
// threshold, never negative.
func PointsToNextLevel(points int) int {
	needed := NextLevelPoints(points) - points
	if needed < 0 {
		return 0
	}
	return needed
}
