// Package config builds explicit configuration values from the environment.
// Components receive these through their constructors; there is no
// process-wide mutable configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Database holds the collector's connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Collector is the configuration for the collector process.
type Collector struct {
	ListenAddr    string
	DB            Database
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	ZoneName      string
	ZoneOffsetMin int // minutes east of UTC
}

// Agent is the configuration for the monitoring agent.
type Agent struct {
	WatchPath      string
	ServerURL      string
	ForwardTimeout time.Duration
	ZoneName       string
	ZoneOffsetMin  int
}

// Zone returns the configured business timezone.
func (c Collector) Zone() *time.Location {
	return time.FixedZone(c.ZoneName, c.ZoneOffsetMin*60)
}

// Zone returns the configured business timezone.
func (a Agent) Zone() *time.Location {
	return time.FixedZone(a.ZoneName, a.ZoneOffsetMin*60)
}

// Default business timezone: IST, UTC+05:30.
const (
	defaultZoneName   = "IST"
	defaultZoneOffset = 5*60 + 30
)

// LoadCollector reads collector settings from the environment.
func LoadCollector() (Collector, error) {
	cfg := Collector{
		ListenAddr: getEnv("LISTEN_ADDR", ":5000"),
		DB: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "sentry"),
			Password: getEnv("DB_PASSWORD", "sentry"),
			Name:     getEnv("DB_NAME", "insider_sentry"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		ZoneName:      getEnv("BUSINESS_TZ_NAME", defaultZoneName),
	}

	offset, err := getEnvInt("BUSINESS_TZ_OFFSET_MIN", defaultZoneOffset)
	if err != nil {
		return Collector{}, err
	}
	cfg.ZoneOffsetMin = offset

	if cfg.JWTSecret == "" {
		return Collector{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminPassword == "" {
		return Collector{}, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	return cfg, nil
}

// LoadAgent reads agent settings from the environment. watchPath, when
// non-empty, overrides WATCH_PATH (it comes from the command line).
func LoadAgent(watchPath string) (Agent, error) {
	if watchPath == "" {
		watchPath = os.Getenv("WATCH_PATH")
	}
	if watchPath == "" {
		return Agent{}, fmt.Errorf("watch path is required (flag or WATCH_PATH)")
	}

	cfg := Agent{
		WatchPath: watchPath,
		ServerURL: getEnv("SERVER_URL", "http://127.0.0.1:5000"),
		ZoneName:  getEnv("BUSINESS_TZ_NAME", defaultZoneName),
	}

	offset, err := getEnvInt("BUSINESS_TZ_OFFSET_MIN", defaultZoneOffset)
	if err != nil {
		return Agent{}, err
	}
	cfg.ZoneOffsetMin = offset

	timeoutSec, err := getEnvInt("FORWARD_TIMEOUT_SEC", 5)
	if err != nil {
		return Agent{}, err
	}
	cfg.ForwardTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}
