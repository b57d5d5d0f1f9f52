// Package app wires configuration, storage, and services into a
// runnable core shared by the server binary.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/interfaces"
	"github.com/rajatgoyal/foliocore/internal/services/portfolio"
	"github.com/rajatgoyal/foliocore/internal/storage/snapcache"
	"github.com/rajatgoyal/foliocore/internal/storage/surrealdb"
)

// App holds all initialized services and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	Cache            interfaces.SnapshotCache
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, the snapshot
// cache, and the portfolio service. configPath may be empty, in which
// case FOLIO_CONFIG and then the binary directory are checked.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "foliocore.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/foliocore.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Cache.Path != "" && !filepath.IsAbs(config.Cache.Path) {
		config.Cache.Path = filepath.Join(binDir, config.Cache.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cache, err := snapcache.NewStore(logger, config.Cache.Path, config.Cache.GetTTL())
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize snapshot cache: %w", err)
	}

	portfolioService := portfolio.NewService(storageManager, cache, config.Charges.EquityTotal, logger)

	logger.Info().
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		Cache:            cache,
		PortfolioService: portfolioService,
		StartupTime:      startupStart,
	}, nil
}

// Close releases storage and cache resources.
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close snapshot cache")
		}
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Failed to close storage")
		}
	}
}
