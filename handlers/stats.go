// handlers/stats.go - Free-form usage telemetry
package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"fodyquest/database"
	"fodyquest/models"
)

// UploadUsageData stores one opaque usage payload.
// POST /upload_usage_data
func UploadUsageData(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 || !json.Valid(body) {
		return c.Status(400).JSON(fiber.Map{"error": "No data provided"})
	}

	record := models.UsageRecord{
		Payload: datatypes.JSON(append([]byte(nil), body...)),
	}
	if err := database.GetDB().Create(&record).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to store usage data"})
	}

	return c.JSON(fiber.Map{"message": "Data uploaded successfully"})
}

// GetUsageStats returns all stored usage payloads in upload order.
// GET /get_fody_stats
func GetUsageStats(c *fiber.Ctx) error {
	var records []models.UsageRecord
	if err := database.GetDB().Order("id").Find(&records).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch usage data"})
	}

	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, json.RawMessage(r.Payload))
	}
	return c.JSON(out)
}
