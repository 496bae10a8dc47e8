package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tracker/internal/bot"
	"tracker/internal/config"
	"tracker/internal/format"
	"tracker/internal/storage"
	"tracker/internal/storage/ch"
	"tracker/internal/storage/jsonfile"
	"tracker/internal/storage/sqlite"
	"tracker/internal/storage/stubs"
	"tracker/internal/tracker"
)

// App represents the bot daemon: configuration, storage, the tracker
// service and the Telegram bot on top of it
type App struct {
	config *config.Config
	logger *zap.Logger
	store  storage.Storage
	svc    *tracker.Service
	bot    *bot.Bot
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		return nil, fmt.Errorf("invalid bot configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	log.Println("Starting Reading Tracker Bot...")

	// Initialize storage
	if err := app.initStorage(); err != nil {
		return nil, err
	}

	// Initialize the tracker service over the loaded snapshots
	if err := app.initService(); err != nil {
		return nil, err
	}

	// Initialize bot
	if err := app.initBot(); err != nil {
		return nil, err
	}

	return app, nil
}

// initStorage opens the configured storage backend
func (a *App) initStorage() error {
	cfg := a.config

	switch cfg.StorageBackend {
	case config.StorageMock:
		log.Println("Using in-memory mock storage")
		a.store = stubs.NewMockDB()

	case config.StorageFile:
		log.Printf("Using JSON file storage in %s", cfg.DataDir)
		a.store = jsonfile.New(cfg.DataDir, a.logger)

	case config.StorageSQLite:
		log.Printf("Using SQLite storage at %s", cfg.SQLitePath)
		db, err := sqlite.New(cfg.SQLitePath, a.logger)
		if err != nil {
			return fmt.Errorf("failed to open SQLite database: %w", err)
		}
		a.store = db

	case config.StorageClickHouse:
		tlsStatus := "without TLS"
		if cfg.ClickHouseUseTLS {
			tlsStatus = "with TLS"
		}
		log.Printf("Connecting to ClickHouse at %s:%d (database: %s, user: %s, %s)",
			cfg.ClickHouseHost, cfg.ClickHousePort, cfg.ClickHouseDatabase, cfg.ClickHouseUser, tlsStatus)
		db, err := ch.NewClickHouseDB(
			cfg.ClickHouseHost,
			cfg.ClickHousePort,
			cfg.ClickHouseDatabase,
			cfg.ClickHouseUser,
			cfg.ClickHousePassword,
			cfg.ClickHouseUseTLS,
		)
		if err != nil {
			return fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		a.store = db

	default:
		return fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}

	if err := a.store.Initialize(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Println("Storage initialized successfully")

	return nil
}

// initService loads the tracker state from storage
func (a *App) initService() error {
	svc, err := tracker.NewService(context.Background(), a.store, a.config.DailyGoal, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create tracker service: %w", err)
	}

	a.svc = svc
	return nil
}

// initBot initializes the Telegram bot
func (a *App) initBot() error {
	render := format.NewRenderer(format.NewEnglish())

	telegramBot, err := bot.NewBot(a.config.TelegramToken, a.svc, render, a.config.AllowedUserIDs, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	log.Printf("Bot created successfully. Allowed users: %v", a.config.AllowedUserIDs)

	a.bot = telegramBot
	return nil
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Polling mode: actively poll Telegram servers
	go func() {
		if err := a.bot.Start(); err != nil {
			log.Fatalf("Failed to start bot: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan

	log.Println("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	a.bot.Stop()

	if err := a.store.Close(); err != nil {
		log.Printf("Error closing storage: %v", err)
		return err
	}

	a.logger.Sync()

	log.Println("Shutdown complete")
	return nil
}
