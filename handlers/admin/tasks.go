// handlers/admin/tasks.go - Deployment-time task management
package admin

import (
	"github.com/gofiber/fiber/v2"

	"fodyquest/database"
	"fodyquest/models"
)

// GetTasks returns all task definitions.
func GetTasks(c *fiber.Ctx) error {
	var tasks []models.Task
	if err := database.GetDB().Order("created_at, id").Find(&tasks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch tasks"})
	}
	return c.JSON(tasks)
}

// CreateTask adds a new task definition.
func CreateTask(c *fiber.Ctx) error {
	var task models.Task
	if err := c.BodyParser(&task); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if task.ID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Task ID required"})
	}
	if task.Points < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Points must not be negative"})
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create task"})
	}
	if err := catalog.Load(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reload catalog"})
	}

	return c.Status(201).JSON(task)
}

// UpdateTask updates an existing task definition.
func UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")

	db := database.GetDB()
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Task not found"})
	}

	if err := c.BodyParser(&task); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	task.ID = id
	if task.Points < 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Points must not be negative"})
	}

	if err := db.Save(&task).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update task"})
	}
	if err := catalog.Load(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reload catalog"})
	}

	return c.JSON(task)
}

// DeleteTask removes a task definition.
func DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")

	result := database.GetDB().Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete task"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Task not found"})
	}
	if err := catalog.Load(); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reload catalog"})
	}

	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}
