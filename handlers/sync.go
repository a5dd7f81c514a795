// handlers/sync.go - Client snapshot reconciliation
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fodyquest/services"
)

type SyncRequest struct {
	Token string               `json:"token"`
	Data  services.SyncPayload `json:"data"`
}

// FullSync reconciles a client-held progression snapshot against server
// state and returns only the delta plus the resulting full status.
// POST /api/gamification/sync
func FullSync(c *fiber.Ctx) error {
	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := progression.Sync(req.Token, req.Data)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": res.NewAchievements,
		"new_tasks":        res.NewTasks,
		"points_earned":    res.PointsEarned,
		"status":           res.Status,
	})
}
