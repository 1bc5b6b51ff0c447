package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/khrees2412/talentflow/internal/config"
	"github.com/khrees2412/talentflow/internal/database"
	"github.com/khrees2412/talentflow/internal/seed"
	"github.com/khrees2412/talentflow/internal/service"
)

// App is the dependency container for the CLI application
type App struct {
	Config  *config.Config
	Store   *database.Store
	Records *service.Service
	Logger  *slog.Logger
}

// NewApp loads config, opens the store and seeds it when configured
func NewApp(ctx context.Context, logOut io.Writer) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return newApp(ctx, config.AppConfig, logOut)
}

func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	store, err := database.OpenDir(ctx, cfg.DataDir, database.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	records := service.New(store,
		service.WithLogger(logger),
		service.WithDefaultPageSize(cfg.PageSize))

	a := &App{Config: cfg, Store: store, Records: records, Logger: logger}

	if cfg.SeedOnStart {
		if _, err := a.Seed(ctx); err != nil {
			store.Close()
			return nil, err
		}
	}
	return a, nil
}

// Seed fills an empty store with generated data
func (a *App) Seed(ctx context.Context) (seed.Report, error) {
	opts := seed.Options{
		Jobs:        a.Config.SeedJobs,
		Candidates:  a.Config.SeedCandidates,
		Assessments: a.Config.SeedAssessments,
		Seed:        a.Config.SeedRandomSeed,
	}
	return seed.NewSeeder(a.Records, opts, a.Logger).Run(ctx)
}

// Close closes all resources
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
