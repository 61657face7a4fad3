// Package store opens the story store selected by configuration.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"social-news/internal/config"
	"social-news/internal/infra/adapter/persistence/jsonfile"
	pgRepo "social-news/internal/infra/adapter/persistence/postgres"
	"social-news/internal/infra/db"
	"social-news/internal/repository"
)

// Store bundles the repository with pool stats and shutdown.
type Store struct {
	Repo repository.StoryRepository
	// Stats is nil for the file store.
	Stats func() sql.DBStats
	close func() error
}

// Close releases the underlying connection pool, if any.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open opens the configured backend. The postgres schema is migrated on open.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	switch cfg.Mode {
	case config.StoreFile:
		repo, err := jsonfile.NewStoryRepo(cfg.File)
		if err != nil {
			return nil, err
		}
		slog.Info("using file store", slog.String("path", cfg.File))
		return &Store{Repo: repo}, nil
	case config.StorePostgres:
		database, err := db.Open(ctx, cfg.DSN(), cfg.Pool)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, err
		}
		return &Store{
			Repo:  pgRepo.NewStoryRepo(database),
			Stats: database.Stats,
			close: database.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.Mode)
	}
}
