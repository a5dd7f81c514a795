// handlers/admin/achievements.go - Deployment-time achievement management
package admin

import (
	"github.com/gofiber/fiber/v2"

	"fodyquest/database"
	"fodyquest/models"
	"fodyquest/services"
)

var catalog *services.Catalog

// InitHandlers gives the admin package the catalog it reloads after catalog
// changes. The progression engine itself never mutates the catalog.
func InitHandlers(cat *services.Catalog) {
	catalog = cat
}

// GetAchievements returns all achievement definitions.
func GetAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := database.GetDB().Order("created_at, id").Find(&achievements).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}
	return c.JSON(achievements)
}

// CreateAchievement adds a new achievement definition.
func CreateAchievement(c *fiber.Ctx) error {
	var achievement models.Achievement
	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if achievement.ID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Achievement ID required"})
	}
	if achievement.Points < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Points must not be negative"})
	}

	if err := database.GetDB().Create(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create achievement"})
	}
	if err := catalog.Load(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reload catalog"})
	}

	return c.Status(201).JSON(achievement)
}

// UpdateAchievement updates an existing achievement definition.
func UpdateAchievement(c *fiber.Ctx) error {
	id := c.Params("id")

	db := database.GetDB()
	var achievement models.Achievement
	if err := db.First(&achievement, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	}

	if err := c.BodyParser(&achievement); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	achievement.ID = id
	if achievement.Points < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Points must not be negative"})
	}

	if err := db.Save(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update achievement"})
	}
	if err := catalog.Load(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reload catalog"})
	}

	return c.JSON(achievement)
}

// DeleteAchievement removes an achievement definition. Existing unlock rows
// keep their history; status assembly skips ids no longer in the catalog.
func DeleteAchievement(c *fiber.Ctx) error {
	id := c.Params("id")

	result := database.GetDB().Delete(&models.Achievement{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Achievement not found"})
	}
	if err := catalog.Load(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reload catalog"})
	}

	return c.JSON(fiber.Map{"message": "Achievement deleted successfully"})
}
