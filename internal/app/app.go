package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
	"github.com/bobmcallan/citypulse/internal/services/analytics"
	"github.com/bobmcallan/citypulse/internal/services/auth"
	"github.com/bobmcallan/citypulse/internal/services/catalog"
	"github.com/bobmcallan/citypulse/internal/services/complaint"
	"github.com/bobmcallan/citypulse/internal/services/generator"
	"github.com/bobmcallan/citypulse/internal/storage"
)

// App holds all initialized services and storage.
// It is the shared core used by cmd/citypulse-server and the server tests.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	CatalogService   interfaces.CatalogService
	ComplaintService interfaces.ComplaintService
	AnalyticsService interfaces.AnalyticsService
	AuthService      interfaces.AuthService
	Validator        *validator.Validate
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

// resolveConfigPath picks the config file: the argument, CITYPULSE_CONFIG,
// citypulse.toml beside the binary, then config/citypulse.toml.
func resolveConfigPath(configPath, binDir string) string {
	if configPath == "" {
		configPath = os.Getenv("CITYPULSE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "citypulse.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/citypulse.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp loads configuration and initializes storage and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	config, err := common.LoadConfig(resolveConfigPath(configPath, binDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	return NewAppWithConfig(context.Background(), config, logger)
}

// NewAppWithConfig builds the App from an already loaded configuration.
// The complaint snapshot is loaded from storage, or generated and persisted
// when storage is empty.
func NewAppWithConfig(ctx context.Context, config *common.Config, logger *common.Logger) (*App, error) {
	startupStart := time.Now()

	if missing := config.ValidateRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %v", missing)
	}

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	catalogService, err := catalog.LoadService(config.Data.CatalogPath, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	seed := config.Data.Seed
	if seed == 0 {
		seed = startupStart.UnixNano()
	}
	generate := func() []models.Complaint {
		rng := rand.New(rand.NewSource(seed))
		return generator.GenerateN(catalogService.Departments(), config.Data.ComplaintCount, rng, startupStart)
	}

	initial, err := complaint.LoadOrSeed(ctx, storageManager.ComplaintStore(), generate, logger)
	if err != nil {
		storageManager.Close()
		return nil, err
	}

	complaintService := complaint.NewService(storageManager.ComplaintStore(), catalogService, initial, logger)
	analyticsService := analytics.NewService(complaintService, catalogService, logger)
	authService := auth.NewService(storageManager, config, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		CatalogService:   catalogService,
		ComplaintService: complaintService,
		AnalyticsService: analyticsService,
		AuthService:      authService,
		Validator:        newValidator(),
		StartupTime:      startupStart,
	}

	logger.Info().
		Int("complaints", len(initial)).
		Int64("seed", seed).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
		a.Storage = nil
	}
}
