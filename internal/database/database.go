// Package database provides PostgreSQL connection management.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	appConfig "github.com/ehub-platform/event-service/internal/config"
	"github.com/ehub-platform/event-service/pkg/retry"
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Host:     appConfig.GetEnv("DB_HOST", "localhost"),
		User:     appConfig.GetEnv("DB_USER", "postgres"),
		Password: appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:   appConfig.GetEnv("DB_NAME", "event_service"),
		Port:     appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:  appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone: appConfig.GetEnv("DB_TIMEZONE", "UTC"),
	}
}

// BuildDSN constructs a PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// New connects using environment configuration.
func New(ctx context.Context) (*gorm.DB, error) {
	return NewWithConfig(ctx, LoadConfigFromEnv())
}

// NewWithConfig connects with custom configuration, retrying with backoff
// until the database accepts connections (it may come up after the service).
func NewWithConfig(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	var db *gorm.DB
	err := retry.Do(ctx, retry.Config{
		MaxAttempts:  10,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}, func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", sanitizeError(err, cfg))
	}

	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// sanitizeError strips the password from connection error messages.
func sanitizeError(err error, cfg Config) error {
	if err == nil || cfg.Password == "" {
		return err
	}
	msg := strings.ReplaceAll(err.Error(), cfg.Password, "***")
	return fmt.Errorf("%s", msg)
}
