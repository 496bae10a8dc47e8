package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage backend names accepted in TRACKER_STORAGE
const (
	StorageFile       = "file"
	StorageSQLite     = "sqlite"
	StorageClickHouse = "clickhouse"
	StorageMock       = "mock"
)

// Config holds the application configuration
type Config struct {
	// Storage backend selection
	StorageBackend string
	DataDir        string
	SQLitePath     string

	// Pages per day used while the reading log is still empty
	DailyGoal int

	// Telegram bot configuration (required only by the bot binary)
	TelegramToken  string
	AllowedUserIDs []int64

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Storage backend (default: file)
	config.StorageBackend = os.Getenv("TRACKER_STORAGE")
	if config.StorageBackend == "" {
		config.StorageBackend = StorageFile
	}
	switch config.StorageBackend {
	case StorageFile, StorageSQLite, StorageClickHouse, StorageMock:
	default:
		return nil, fmt.Errorf("invalid TRACKER_STORAGE: %s (expected file, sqlite, clickhouse or mock)",
			config.StorageBackend)
	}

	// Data directory for file-based backends (default: data)
	config.DataDir = os.Getenv("TRACKER_DATA_DIR")
	if config.DataDir == "" {
		config.DataDir = "data"
	}

	config.SQLitePath = os.Getenv("TRACKER_SQLITE_PATH")
	if config.SQLitePath == "" {
		config.SQLitePath = filepath.Join(config.DataDir, "tracker.db")
	}

	// Daily reading goal in pages (default: 50)
	goalStr := os.Getenv("TRACKER_DAILY_GOAL")
	if goalStr == "" {
		config.DailyGoal = 50
	} else {
		goal, err := strconv.Atoi(goalStr)
		if err != nil {
			return nil, fmt.Errorf("invalid TRACKER_DAILY_GOAL: %w", err)
		}
		if goal <= 0 {
			return nil, fmt.Errorf("TRACKER_DAILY_GOAL must be positive, got %d", goal)
		}
		config.DailyGoal = goal
	}

	// Telegram Bot Token (validated separately, the CLI runs without it)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	// Allowed User IDs
	allowedIDsStr := os.Getenv("ALLOWED_USER_IDS")
	if allowedIDsStr != "" {
		idStrs := strings.Split(allowedIDsStr, ",")
		for _, idStr := range idStrs {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID in ALLOWED_USER_IDS: %s", idStr)
			}
			config.AllowedUserIDs = append(config.AllowedUserIDs, id)
		}
	}

	// ClickHouse configuration (required only for the clickhouse backend)
	if config.StorageBackend == StorageClickHouse {
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when TRACKER_STORAGE is clickhouse")
		}

		portStr := os.Getenv("CLICKHOUSE_PORT")
		if portStr == "" {
			config.ClickHousePort = 9000 // Default ClickHouse native port
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
			}
			config.ClickHousePort = port
		}

		config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
		if config.ClickHouseDatabase == "" {
			config.ClickHouseDatabase = "default"
		}

		config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
		if config.ClickHouseUser == "" {
			config.ClickHouseUser = "default"
		}

		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		// Password is optional, can be empty

		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	}

	return config, nil
}

// ValidateBot checks the fields the Telegram bot cannot run without.
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if len(c.AllowedUserIDs) == 0 {
		return fmt.Errorf("ALLOWED_USER_IDS is required (comma-separated list of Telegram user IDs)")
	}
	return nil
}
