// handlers/leaderboard.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the anonymized top 100 by points.
// GET /api/gamification/leaderboard
func GetLeaderboard(c *fiber.Ctx) error {
	board, err := leaderboard.Compile()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{
		"leaderboard": board.Entries,
		"total_users": board.TotalUsers,
	})
}
