// handlers/settings.go - User settings merge
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type UpdateSettingsRequest struct {
	Token    string         `json:"token"`
	Settings map[string]any `json:"settings"`
}

// UpdateSettings shallow-merges the submitted settings over the stored ones.
// Keys absent from the request are preserved; any key is accepted.
// POST /api/gamification/settings
func UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	settings, err := progression.UpdateSettings(req.Token, req.Settings)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": settings,
	})
}
