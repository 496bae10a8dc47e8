package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tracker/internal/config"
	"tracker/internal/format"
	"tracker/internal/storage"
	"tracker/internal/storage/ch"
	"tracker/internal/storage/jsonfile"
	"tracker/internal/storage/sqlite"
	"tracker/internal/storage/stubs"
	"tracker/internal/tracker"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Personal reading tracker",
	Long: `Track what you read: keep an ordered queue of materials, log pages
day by day and see when each queued material is projected to be finished
at your current pace.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openService loads the configuration, opens the configured storage
// backend and builds the tracker service over it. The returned cleanup
// function closes the storage and must be called before exit.
func openService(ctx context.Context) (*tracker.Service, *format.Renderer, func(), error) {
	// A missing .env file is fine for the CLI
	godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zap.NewNop()
	if os.Getenv("TRACKER_DEBUG") != "" {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	store, err := openStorage(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	svc, err := tracker.NewService(ctx, store, cfg.DailyGoal, logger)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close storage: %v\n", err)
		}
		logger.Sync()
	}
	return svc, format.NewRenderer(format.NewEnglish()), cleanup, nil
}

// openStorage builds the storage backend named in the configuration
func openStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageMock:
		return stubs.NewMockDB(), nil
	case config.StorageFile:
		return jsonfile.New(cfg.DataDir, logger), nil
	case config.StorageSQLite:
		return sqlite.New(cfg.SQLitePath, logger)
	case config.StorageClickHouse:
		return ch.NewClickHouseDB(
			cfg.ClickHouseHost,
			cfg.ClickHousePort,
			cfg.ClickHouseDatabase,
			cfg.ClickHouseUser,
			cfg.ClickHousePassword,
			cfg.ClickHouseUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}
