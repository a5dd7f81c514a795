// services/leaderboard.go - Ranked, anonymized view over all user records
package services

import (
	"log"

	"gorm.io/gorm"

	"fodyquest/models"
)

const leaderboardSize = 100

// LeaderboardEntry is the anonymized ranked view of one user. The full token
// never leaves this boundary.
type LeaderboardEntry struct {
	Token        string `json:"token"`
	Points       int    `json:"points"`
	Level        int    `json:"level"`
	Achievements int    `json:"achievements"`
	Rank         int    `json:"rank"`
}

type Leaderboard struct {
	Entries    []LeaderboardEntry `json:"leaderboard"`
	TotalUsers int64              `json:"total_users"`
}

// LeaderboardCompiler derives the ranked view. It is read-only: compiling a
// leaderboard never mutates any record.
type LeaderboardCompiler struct {
	db *gorm.DB
}

func NewLeaderboardCompiler(db *gorm.DB) *LeaderboardCompiler {
	return &LeaderboardCompiler{db: db}
}

// Compile builds the top list ordered by points, ties kept in creation
// order with the earliest record ranking higher. An unreadable user
// collection degrades to an empty board instead of failing the request.
func (l *LeaderboardCompiler) Compile() (*Leaderboard, error) {
	var users []models.User
	if err := l.db.Order("points DESC, created_at ASC").Limit(leaderboardSize).Find(&users).Error; err != nil {
		log.Printf("leaderboard: user collection unreadable: %v", err)
		return &Leaderboard{Entries: []LeaderboardEntry{}}, nil
	}

	counts := make(map[string]int)
	var rows []struct {
		Token string
		N     int
	}
	if err := l.db.Model(&models.UserAchievement{}).
		Select("token, COUNT(*) AS n").
		Group("token").
		Scan(&rows).Error; err == nil {
		for _, r := range rows {
			counts[r.Token] = r.N
		}
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Token:        AnonymizeToken(u.Token),
			Points:       u.Points,
			Level:        Level(u.Points),
			Achievements: counts[u.Token],
			Rank:         i + 1,
		})
	}

	var total int64
	if err := l.db.Model(&models.User{}).Count(&total).Error; err != nil {
		total = int64(len(entries))
	}

	return &Leaderboard{Entries: entries, TotalUsers: total}, nil
}

// AnonymizeToken reduces a token to its first 8 characters plus a fixed
// suffix marker.
func AnonymizeToken(token string) string {
	if len(token) > minTokenLength {
		token = token[:minTokenLength]
	}
	return token + "..."
}
