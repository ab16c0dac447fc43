package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/api"
	"github.com/aashig53/InsiderThreatDetector/internal/api/handlers"
	"github.com/aashig53/InsiderThreatDetector/internal/auth"
	"github.com/aashig53/InsiderThreatDetector/internal/classify"
	"github.com/aashig53/InsiderThreatDetector/internal/config"
	"github.com/aashig53/InsiderThreatDetector/internal/db"
	"github.com/aashig53/InsiderThreatDetector/internal/logging"
	"github.com/aashig53/InsiderThreatDetector/internal/metrics"
	"github.com/aashig53/InsiderThreatDetector/internal/store"
)

func main() {
	// A missing .env file is fine, the environment still applies.
	_ = godotenv.Load()

	logger := logging.New()
	defer logger.Sync()

	cfg, err := config.LoadCollector()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	database, err := db.Connect(cfg.DB, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.Migrate(database); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	authSvc := auth.NewService(database, cfg.JWTSecret)
	if err := authSvc.Bootstrap(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Fatal("failed to bootstrap admin user", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	zone := cfg.Zone()
	alertSvc := handlers.NewAlertService(
		store.NewGormStore(database),
		classify.New(zone),
		zone,
		metrics.New(registry),
		logger,
	)

	router := api.Router(alertSvc, authSvc, registry, logger)

	logger.Info("collector listening", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
