// handlers/progression.go - Point awards, unlocks, completions, initialize
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type AddPointsRequest struct {
	Token   string         `json:"token"`
	Points  int            `json:"points"`
	Action  string         `json:"action"`
	Details map[string]any `json:"details"`
}

type UnlockAchievementRequest struct {
	Token         string `json:"token"`
	AchievementID string `json:"achievement_id"`
}

type CompleteTaskRequest struct {
	Token  string `json:"token"`
	TaskID string `json:"task_id"`
}

type InitializeRequest struct {
	Token      string         `json:"token"`
	DeviceInfo map[string]any `json:"device_info"`
}

// AddPoints awards points for a client action.
// POST /api/gamification/points
func AddPoints(c *fiber.Ctx) error {
	var req AddPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := progression.AwardPoints(req.Token, req.Points, req.Action, req.Details)
	if err != nil {
		return renderError(c, err)
	}

	message := fmt.Sprintf("+%d points", res.PointsAdded)
	if res.LeveledUp {
		message += fmt.Sprintf(" 🎉 LEVEL %d!", res.Level)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"points_added": res.PointsAdded,
		"total_points": res.TotalPoints,
		"level":        res.Level,
		"level_up":     res.LeveledUp,
		"message":      message,
	})
}

// UnlockAchievement grants an achievement. A repeat call is a successful
// no-op, not an error.
// POST /api/gamification/achievement
func UnlockAchievement(c *fiber.Ctx) error {
	var req UnlockAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AchievementID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Achievement ID required"})
	}

	res, err := progression.UnlockAchievement(req.Token, req.AchievementID)
	if err != nil {
		return renderError(c, err)
	}
	if !res.Granted {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Achievement already unlocked",
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"achievement":   res.Achievement,
		"points_earned": res.PointsEarned,
		"message":       fmt.Sprintf("🏆 %s %s - +%d points!", res.Achievement.Icon, res.Achievement.Name, res.PointsEarned),
	})
}

// CompleteTask marks a task as completed, symmetric to UnlockAchievement.
// POST /api/gamification/task
func CompleteTask(c *fiber.Ctx) error {
	var req CompleteTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.TaskID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Task ID required"})
	}

	res, err := progression.CompleteTask(req.Token, req.TaskID)
	if err != nil {
		return renderError(c, err)
	}
	if !res.Granted {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Task already completed",
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"task":          res.Task,
		"points_earned": res.PointsEarned,
		"message":       fmt.Sprintf("✅ %s %s - +%d points!", res.Task.Icon, res.Task.Name, res.PointsEarned),
	})
}

// InitializeUser is the idempotent first-touch called on app launch. The
// first-login achievement is granted through the regular unlock path, so
// calling this twice never double-awards.
// POST /api/gamification/initialize
func InitializeUser(c *fiber.Ctx) error {
	var req InitializeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	status, err := progression.Initialize(req.Token, req.DeviceInfo)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User initialized",
		"status":  status,
	})
}
