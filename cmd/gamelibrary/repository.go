package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gamelibrary/internal/adapter/database"
	"gamelibrary/internal/adapter/dataset"
	"gamelibrary/internal/adapter/memory"
	"gamelibrary/internal/config"
	"gamelibrary/internal/domain"
)

// openRepository builds the configured backend. The memory backend is filled
// from the CSV on every start; an empty database is seeded once.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Repository, func(), error) {
	switch cfg.Repository {
	case config.RepositoryMemory:
		repo := memory.New()
		if err := populate(ctx, repo, cfg, logger); err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	case config.RepositoryDatabase:
		db, err := openDatabase(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() { _ = db.Close() }

		n, err := db.GetNumberOfGames(ctx)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		if n == 0 {
			if err := populate(ctx, db, cfg, logger); err != nil {
				closeDB()
				return nil, nil, err
			}
		}
		return db, closeDB, nil
	}
	return nil, nil, fmt.Errorf("unknown repository %q", cfg.Repository)
}

func openDatabase(cfg *config.Config, logger *slog.Logger) (*database.DB, error) {
	db, err := database.Open(database.Config{
		Driver: cfg.DB.Driver,
		DSN:    cfg.DB.DSN,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return db, nil
}

func populate(ctx context.Context, repo domain.Repository, cfg *config.Config, logger *slog.Logger) error {
	ds, err := dataset.LoadFile(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if cfg.ReviewsPath != "" {
		if err := dataset.LoadReviewsFile(cfg.ReviewsPath, ds); err != nil {
			return fmt.Errorf("load reviews: %w", err)
		}
	}
	if err := dataset.Populate(ctx, repo, ds); err != nil {
		return err
	}
	logger.Info("catalog loaded", "path", cfg.DataPath, "games", len(ds.Games), "genres", len(ds.Genres),
		"publishers", len(ds.Publishers), "users", len(ds.Users), "reviews", len(ds.Reviews))
	return nil
}

func runSeed(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Repository != config.RepositoryDatabase {
		return errors.New("seed requires --repository=database")
	}
	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return populate(ctx, db, cfg, logger)
}
