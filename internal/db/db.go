package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aashig53/InsiderThreatDetector/internal/config"
	"github.com/aashig53/InsiderThreatDetector/internal/logging"
	"github.com/aashig53/InsiderThreatDetector/internal/models"
)

// Connect opens the collector database described by cfg.
func Connect(cfg config.Database, logger *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the alert and user tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Alert{}, &models.User{})
}
