// Package config loads service configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Config holds all settings for the API server and the lambdas.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"dynamodb"`

	// --- Postgres ---
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"points"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"behavior_points"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMigrate  bool   `envconfig:"DB_MIGRATE" default:"true"`

	// --- DynamoDB ---
	TransactionsTable  string `envconfig:"DYNAMODB_TRANSACTIONS_TABLE_NAME" default:"points_transactions"`
	BalancesTable      string `envconfig:"DYNAMODB_BALANCES_TABLE_NAME" default:"point_balances"`
	AwardsTable        string `envconfig:"DYNAMODB_AWARDS_TABLE_NAME" default:"user_awards"`
	CatalogTable       string `envconfig:"DYNAMODB_CATALOG_TABLE_NAME" default:"catalog_items"`
	SessionsTable      string `envconfig:"DYNAMODB_SESSIONS_TABLE_NAME" default:"sessions"`
	ProfilesTable      string `envconfig:"DYNAMODB_PROFILES_TABLE_NAME" default:"profiles"`
	NotificationsTable string `envconfig:"DYNAMODB_NOTIFICATIONS_TABLE_NAME" default:"notifications"`

	// SQSQueueURL receives award notification events. Empty means events are only logged.
	SQSQueueURL string `envconfig:"SQS_QUEUE_URL"`

	// --- Reconciliation ---
	ReconcileEnabled  bool   `envconfig:"RECONCILE_ENABLED" default:"true"`
	ReconcileSchedule string `envconfig:"RECONCILE_SCHEDULE" default:"@every 15m"`

	// --- Sessions ---
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	DevAdminToken string        `envconfig:"DEV_ADMIN_TOKEN"`
}

// DatabaseDSN returns the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Validate checks settings that envconfig cannot.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres driver")
		}
		if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("invalid DB_MIN_CONNS/DB_MAX_CONNS")
		}
	case DriverDynamoDB:
		if c.TransactionsTable == "" || c.BalancesTable == "" || c.AwardsTable == "" || c.CatalogTable == "" {
			return fmt.Errorf("one or more DynamoDB table names are empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.ReconcileEnabled {
		if _, err := cron.ParseStandard(c.ReconcileSchedule); err != nil {
			return fmt.Errorf("invalid RECONCILE_SCHEDULE: %w", err)
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.DevAdminToken != "" && !strings.Contains(c.DevAdminToken, ".") {
		return fmt.Errorf("DEV_ADMIN_TOKEN must have the form <session_id>.<secret>")
	}
	return nil
}

// Load reads the .env file if present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetupLogging configures the global logrus logger.
func SetupLogging(level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown LOG_LEVEL, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
