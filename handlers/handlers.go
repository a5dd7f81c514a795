// handlers/handlers.go - Service wiring for the gamification handlers
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fodyquest/services"
)

var (
	userStore   *services.UserStore
	catalog     *services.Catalog
	progression *services.Progression
	leaderboard *services.LeaderboardCompiler
)

// InitHandlers wires the handler package to its services. Call once at
// startup, after the database is up and the catalog is loaded.
func InitHandlers(db *gorm.DB, cat *services.Catalog) {
	userStore = services.NewUserStore(db)
	catalog = cat
	progression = services.NewProgression(userStore, cat)
	leaderboard = services.NewLeaderboardCompiler(db)
}

// renderError maps engine errors to HTTP responses.
func renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(400).JSON(fiber.Map{"error": "Invalid token"})
	case errors.Is(err, services.ErrInvalidAmount):
		return c.Status(400).JSON(fiber.Map{"error": "Points must be positive"})
	case errors.Is(err, services.ErrAchievementNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	case errors.Is(err, services.ErrTaskNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Task not found"})
	default:
		log.Printf("handler error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
