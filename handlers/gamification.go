// handlers/gamification.go - Catalog info, user status, token minting
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fodyquest/models"
	"fodyquest/services"
	"fodyquest/utils"
)

// GetGamificationInfo returns the full catalog, the point-value table and a
// description of the level formula.
// GET /api/gamification/info
func GetGamificationInfo(c *fiber.Ctx) error {
	achievements := make(map[string]models.Achievement)
	for _, a := range catalog.Achievements() {
		achievements[a.ID] = a
	}
	tasks := make(map[string]models.Task)
	for _, t := range catalog.Tasks() {
		tasks[t.ID] = t
	}

	return c.JSON(fiber.Map{
		"achievements": achievements,
		"tasks":        tasks,
		"point_values": services.PointValues,
		"level_formula": fiber.Map{
			"description": "Level = floor(sqrt(points / 100)) + 1",
			"example": fiber.Map{
				"0":    1,
				"100":  2,
				"400":  3,
				"900":  4,
				"1600": 5,
			},
		},
	})
}

// GetUserStatus returns the full progression status for a token, creating
// the record on first reference.
// GET /api/gamification/status/:token
func GetUserStatus(c *fiber.Ctx) error {
	status, err := progression.Status(c.Params("token"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(status)
}

// CreateToken mints a fresh opaque token and its progression record, for
// devices that have none yet.
// POST /api/gamification/token
func CreateToken(c *fiber.Ctx) error {
	token := utils.NewToken()
	if _, err := userStore.GetOrCreate(token); err != nil {
		return renderError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}
