// Package store provides persistence for alert records. Alerts are
// insert-only; nothing in the system updates or deletes them.
package store

import (
	"gorm.io/gorm"

	"github.com/aashig53/InsiderThreatDetector/internal/models"
)

// AlertStore is the narrow persistence interface the collector works
// against. The gorm implementation backs production; MemoryStore backs
// tests.
type AlertStore interface {
	// Create inserts a new alert and assigns its ID.
	Create(alert *models.Alert) error
	// ListDesc returns all alerts ordered by timestamp descending.
	ListDesc() ([]models.Alert, error)
	// All returns every alert in insertion order, for aggregation.
	All() ([]models.Alert, error)
}

// GormStore is the database-backed AlertStore.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore wraps an open gorm handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Create(alert *models.Alert) error {
	return s.DB.Create(alert).Error
}

func (s *GormStore) ListDesc() ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.DB.Order("timestamp DESC").Find(&alerts).Error
	return alerts, err
}

func (s *GormStore) All() ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.DB.Find(&alerts).Error
	return alerts, err
}
