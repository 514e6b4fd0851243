// Package storage provides the board.Store backends selected by the [storage]
// config section.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"jobboard/internal/board"
	"jobboard/internal/config"
	"jobboard/internal/database"
)

// SQLiteFileName is the database file created inside the sqlite storage dir.
const SQLiteFileName = "jobboard.db"

// NewStoreFromConfig creates a Store implementation based on the storage config type.
func NewStoreFromConfig(ctx context.Context, cfg config.StorageConfig, clock board.Clock) (board.Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem storage requires dir to be set")
		}
		store, err := NewFileSystemStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "sqlite":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("sqlite storage requires dir to be set")
		}
		if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		store, err := database.NewSQLiteStore(filepath.Join(cfg.Dir, SQLiteFileName), clock)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "badger":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("badger storage requires dir to be set")
		}
		store, err := NewBadgerStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "s3":
		store, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
