// handlers/admin/users.go - Read-only admin views over user records
package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"fodyquest/database"
	"fodyquest/models"
)

// GetUsers returns user records ordered by points.
// GET /api/admin/users?limit=100&offset=0
func GetUsers(c *fiber.Ctx) error {
	limit := clampInt(parseIntDefault(c.Query("limit"), 100), 1, 500)
	offset := parseIntDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()
	var users []models.User
	if err := db.Order("points DESC, created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	var total int64
	db.Model(&models.User{}).Count(&total)

	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetAnalytics returns aggregate progression totals.
// GET /api/admin/analytics
func GetAnalytics(c *fiber.Ctx) error {
	db := database.GetDB()

	var totalUsers, totalUnlocks, totalCompletions, ledgerEntries int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.UserAchievement{}).Count(&totalUnlocks)
	db.Model(&models.UserTask{}).Count(&totalCompletions)
	db.Model(&models.PointEntry{}).Count(&ledgerEntries)

	var totalPoints int64
	db.Model(&models.PointEntry{}).Select("COALESCE(SUM(amount), 0)").Scan(&totalPoints)

	return c.JSON(fiber.Map{
		"total_users":       totalUsers,
		"total_unlocks":     totalUnlocks,
		"total_completions": totalCompletions,
		"ledger_entries":    ledgerEntries,
		"total_points":      totalPoints,
	})
}

// helpers
func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
