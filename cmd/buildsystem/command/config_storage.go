package command

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pixil98/go-buildsystem/internal/persistence"
	"github.com/pixil98/go-buildsystem/internal/player"
	"github.com/pixil98/go-buildsystem/internal/spawn"
	"github.com/pixil98/go-buildsystem/internal/storage"
	"github.com/pixil98/go-buildsystem/internal/world"
	"github.com/pixil98/go-errors"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type StorageConfig struct {
	// Backend is "file" (one JSON file per record) or "sqlite".
	Backend string       `json:"backend"`
	Path    string       `json:"path"`
	Backups BackupConfig `json:"backups"`
}

type BackupConfig struct {
	Path string `json:"path"`
	Keep int    `json:"keep"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case "", BackendFile, BackendSQLite:
	default:
		el.Add(fmt.Errorf("storage: unknown backend %q", c.Backend))
	}
	if c.Path == "" {
		el.Add(fmt.Errorf("storage: path is required"))
	}
	if c.Backups.Keep < 0 {
		el.Add(fmt.Errorf("storage: backups.keep cannot be negative"))
	}

	return el.Err()
}

func (c *StorageConfig) buildStores(ctx context.Context) (persistence.Stores, error) {
	if c.Backend == BackendSQLite {
		return c.buildSQLiteStores(ctx)
	}
	return c.buildFileStores()
}

func (c *StorageConfig) buildFileStores() (persistence.Stores, error) {
	worlds, err := storage.NewFileStore[*world.Record](filepath.Join(c.Path, "worlds"))
	if err != nil {
		return persistence.Stores{}, fmt.Errorf("creating world store: %w", err)
	}
	players, err := storage.NewFileStore[*player.Record](filepath.Join(c.Path, "players"))
	if err != nil {
		return persistence.Stores{}, fmt.Errorf("creating player store: %w", err)
	}
	sp, err := storage.NewFileStore[*spawn.Record](filepath.Join(c.Path, "spawn"))
	if err != nil {
		return persistence.Stores{}, fmt.Errorf("creating spawn store: %w", err)
	}

	return persistence.Stores{
		Worlds:  worlds,
		Players: players,
		Spawn:   sp,
	}, nil
}

func (c *StorageConfig) buildSQLiteStores(ctx context.Context) (persistence.Stores, error) {
	db, err := storage.OpenSQLite(c.Path)
	if err != nil {
		return persistence.Stores{}, err
	}

	worlds, err := storage.NewSQLiteStore[*world.Record](ctx, db, "world")
	if err != nil {
		return persistence.Stores{}, fmt.Errorf("creating world store: %w", err)
	}
	players, err := storage.NewSQLiteStore[*player.Record](ctx, db, "player")
	if err != nil {
		return persistence.Stores{}, fmt.Errorf("creating player store: %w", err)
	}
	sp, err := storage.NewSQLiteStore[*spawn.Record](ctx, db, "spawn")
	if err != nil {
		return persistence.Stores{}, fmt.Errorf("creating spawn store: %w", err)
	}

	return persistence.Stores{
		Worlds:  worlds,
		Players: players,
		Spawn:   sp,
	}, nil
}

func (c *StorageConfig) serviceOpts() []persistence.ServiceOpt {
	if c.Backups.Path == "" {
		return nil
	}
	keep := c.Backups.Keep
	if keep == 0 {
		keep = 10
	}
	return []persistence.ServiceOpt{persistence.WithBackups(c.Backups.Path, keep)}
}
