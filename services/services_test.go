// services/services_test.go - shared test fixtures
package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fodyquest/models"
)

var testDBSeq atomic.Int64

// newTestDB opens a private in-memory database per test. A single connection
// keeps the shared-cache handle alive for the test's lifetime.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Achievement{},
		&models.Task{},
		&models.UserAchievement{},
		&models.UserTask{},
		&models.PointEntry{},
		&models.UsageRecord{},
	))
	return db
}

func newTestProgression(t *testing.T) (*Progression, *UserStore, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	catalog := NewCatalog(db)
	require.NoError(t, catalog.Load())
	store := NewUserStore(db)
	return NewProgression(store, catalog), store, db
}
