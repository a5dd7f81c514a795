// services/catalog.go - Achievement and task catalog with in-memory cache
package services

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"fodyquest/models"
)

// FirstLoginAchievementID is granted once per token on initialize, through
// the same idempotent unlock path as any other achievement.
const FirstLoginAchievementID = "first_login"

// PointValues is the point table for direct client actions.
var PointValues = map[string]int{
	"photo_upload":                10,
	"photo_upload_with_note":      15,
	"photo_upload_with_reference": 12,
	"osm_note_create":             5,
	"app_open":                    1,
	"map_view":                    2,
	"stats_view":                  1,
	"settings_view":               1,
}

var defaultAchievements = []models.Achievement{
	{ID: "first_login", Name: "First Steps", Description: "Opened the app for the first time", Icon: "👋", Points: 50, Category: "milestone"},
	{ID: "first_photo", Name: "First Shot", Description: "Uploaded a first photo", Icon: "📸", Points: 100, Category: "upload"},
	{ID: "explorer", Name: "Explorer", Description: "Visited every section of the app", Icon: "🧭", Points: 75, Category: "exploration"},
	{ID: "map_navigation", Name: "Cartographer", Description: "Used the map", Icon: "🗺️", Points: 25, Category: "exploration"},
	{ID: "note_creator", Name: "Note Creator", Description: "Created an OSM note", Icon: "📝", Points: 30, Category: "note"},
	{ID: "photo_collector_10", Name: "Collector", Description: "Uploaded 10 photos", Icon: "📚", Points: 150, Category: "upload"},
	{ID: "photo_collector_50", Name: "Expert Collector", Description: "Uploaded 50 photos", Icon: "🏆", Points: 500, Category: "upload"},
	{ID: "night_owl", Name: "Night Owl", Description: "Used the app after 10 PM", Icon: "🦉", Points: 20, Category: "special"},
	{ID: "early_bird", Name: "Early Bird", Description: "Used the app before 6 AM", Icon: "🐦", Points: 20, Category: "special"},
	{ID: "weekend_warrior", Name: "Weekend Warrior", Description: "Used the app on a weekend", Icon: "⚔️", Points: 25, Category: "special"},
	{ID: "speed_demon", Name: "Speed Demon", Description: "Uploaded a photo within 30 seconds of opening the app", Icon: "⚡", Points: 40, Category: "special"},
	{ID: "quality_contributor", Name: "Quality Contributor", Description: "Added a note to an uploaded photo", Icon: "⭐", Points: 35, Category: "upload"},
	{ID: "complete_profile", Name: "Complete Profile", Description: "Signed in through OSM", Icon: "✅", Points: 50, Category: "milestone"},
	{ID: "settings_guru", Name: "Settings Guru", Description: "Opened the app settings", Icon: "⚙️", Points: 15, Category: "exploration"},
}

var defaultTasks = []models.Task{
	{ID: "task_first_upload", Name: "Upload your first photo", Description: "Try uploading your first photo to the Fody database", Points: 50, Icon: "📷"},
	{ID: "task_explore_map", Name: "Explore the map", Description: "Open the Map tab and browse the guideposts", Points: 25, Icon: "🗺️"},
	{ID: "task_check_stats", Name: "Check the statistics", Description: "Look at the statistics in the Fody section", Points: 15, Icon: "📊"},
	{ID: "task_add_note", Name: "Create a note", Description: "Add an OSM note on the map", Points: 30, Icon: "📝"},
	{ID: "task_change_settings", Name: "Change the settings", Description: "Open the settings and look around", Points: 10, Icon: "⚙️"},
	{ID: "task_view_project", Name: "Seasonal project", Description: "Look at the current seasonal project", Points: 20, Icon: "📅"},
}

// Catalog caches achievement and task definitions. The progression engine
// only reads it; writes happen at bootstrap and through Load after admin
// changes.
type Catalog struct {
	db *gorm.DB

	mu           sync.RWMutex
	achievements []models.Achievement
	tasks        []models.Task
	achByID      map[string]models.Achievement
	taskByID     map[string]models.Task
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Load reads the catalog from the database into the cache, seeding the
// built-in defaults when the stored catalog is empty or unreadable.
func (c *Catalog) Load() error {
	var achievements []models.Achievement
	if err := c.db.Order("created_at, id").Find(&achievements).Error; err != nil {
		log.Printf("catalog: achievements unreadable, falling back to defaults: %v", err)
		achievements = nil
	}
	if len(achievements) == 0 {
		achievements = make([]models.Achievement, len(defaultAchievements))
		copy(achievements, defaultAchievements)
		if err := c.db.Create(&achievements).Error; err != nil {
			return err
		}
		log.Printf("catalog: seeded %d default achievements", len(achievements))
	}

	var tasks []models.Task
	if err := c.db.Order("created_at, id").Find(&tasks).Error; err != nil {
		log.Printf("catalog: tasks unreadable, falling back to defaults: %v", err)
		tasks = nil
	}
	if len(tasks) == 0 {
		tasks = make([]models.Task, len(defaultTasks))
		copy(tasks, defaultTasks)
		if err := c.db.Create(&tasks).Error; err != nil {
			return err
		}
		log.Printf("catalog: seeded %d default tasks", len(tasks))
	}

	achByID := make(map[string]models.Achievement, len(achievements))
	for _, a := range achievements {
		achByID[a.ID] = a
	}
	taskByID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	c.mu.Lock()
	c.achievements = achievements
	c.tasks = tasks
	c.achByID = achByID
	c.taskByID = taskByID
	c.mu.Unlock()
	return nil
}

func (c *Catalog) GetAchievement(id string) (models.Achievement, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.achByID[id]
	return a, ok
}

func (c *Catalog) GetTask(id string) (models.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.taskByID[id]
	return t, ok
}

// Achievements returns the cached definitions in catalog order.
func (c *Catalog) Achievements() []models.Achievement {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Achievement, len(c.achievements))
	copy(out, c.achievements)
	return out
}

// Tasks returns the cached definitions in catalog order.
func (c *Catalog) Tasks() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}
