// services/store.go - Durable per-token user record store
package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fodyquest/models"
)

// UserStore owns all reads and writes of user records. Apply is the single
// write path: calls for the same token serialize on a per-token mutex so a
// full read-modify-write cycle is atomic, while distinct tokens proceed in
// parallel.
type UserStore struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db, locks: make(map[string]*sync.Mutex)}
}

func (s *UserStore) lock(token string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[token]
	if !ok {
		l = &sync.Mutex{}
		s.locks[token] = l
	}
	return l
}

func defaultSettings() datatypes.JSONMap {
	return datatypes.JSONMap{
		"gamification_enabled":  true,
		"notifications_enabled": true,
	}
}

// GetOrCreate loads the record for token, creating and persisting a fresh
// one on first reference.
func (s *UserStore) GetOrCreate(token string) (*models.User, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	l := s.lock(token)
	l.Lock()
	defer l.Unlock()
	return s.getOrCreate(s.db, token)
}

func (s *UserStore) getOrCreate(tx *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := tx.First(&user, "token = ?", token).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	user = models.User{
		Token:      token,
		Settings:   defaultSettings(),
		CreatedAt:  now,
		LastActive: now,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Apply runs fn against the current record inside one transaction, then
// stamps last_active exactly once and saves. fn mutates the record in place
// and may append ledger, unlock, or completion rows through tx; a failure
// rolls the whole update back, leaving the prior committed state intact.
func (s *UserStore) Apply(token string, fn func(tx *gorm.DB, user *models.User) error) (*models.User, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	l := s.lock(token)
	l.Lock()
	defer l.Unlock()

	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		u, err := s.getOrCreate(tx, token)
		if err != nil {
			return err
		}
		if err := fn(tx, u); err != nil {
			return err
		}
		u.LastActive = time.Now().UTC()
		if err := tx.Save(u).Error; err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Unlocks returns the token's achievement unlock rows in unlock order.
func (s *UserStore) Unlocks(token string) ([]models.UserAchievement, error) {
	var rows []models.UserAchievement
	err := s.db.Where("token = ?", token).Order("id").Find(&rows).Error
	return rows, err
}

// Completions returns the token's task completion rows in completion order.
func (s *UserStore) Completions(token string) ([]models.UserTask, error) {
	var rows []models.UserTask
	err := s.db.Where("token = ?", token).Order("id").Find(&rows).Error
	return rows, err
}
