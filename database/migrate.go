// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"fodyquest/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Achievement{},
		&models.Task{},
		&models.UserAchievement{},
		&models.UserTask{},
		&models.PointEntry{},
		&models.UsageRecord{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	log.Println("✅ Migrations completed")

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes on top of what AutoMigrate declares
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes (leaderboard ordering)
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_points ON users(points DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_created ON users(created_at ASC)")

	// Unlock indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_token ON user_achievements(token)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_pair ON user_achievements(token, achievement_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_tasks_token ON user_tasks(token)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_tasks_pair ON user_tasks(token, task_id)")

	// Ledger indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_point_entries_token ON point_entries(token)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_point_entries_created ON point_entries(created_at DESC)")

	log.Println("✅ Indexes created successfully")
}
