// Package storage opens the key-value backend selected in the configuration.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/invoi/internal/config"
	"github.com/MrJamesThe3rd/invoi/internal/database"
	"github.com/MrJamesThe3rd/invoi/internal/kv"
	"github.com/MrJamesThe3rd/invoi/internal/kv/filekv"
	"github.com/MrJamesThe3rd/invoi/internal/kv/pgkv"
	"github.com/MrJamesThe3rd/invoi/internal/kv/rediskv"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Backend is an open store plus whatever must be released with it.
type Backend struct {
	kv.Store
	Driver string
	close  func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}

	return b.close()
}

// Memory is a backend that keeps nothing between sessions.
func Memory() *Backend {
	return &Backend{Store: kv.Nop{}, Driver: DriverMemory}
}

func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Storage.Driver {
	case DriverFile, "":
		return openFile(cfg)
	case DriverPostgres:
		return openPostgres(ctx, cfg)
	case DriverRedis:
		return openRedis(ctx, cfg)
	case DriverMemory:
		return Memory(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
}

func openFile(cfg *config.Config) (*Backend, error) {
	dir := cfg.Storage.Dir
	if dir == "" {
		var err error

		dir, err = filekv.DefaultDir(cfg.App.Name)
		if err != nil {
			return nil, fmt.Errorf("resolving storage dir: %w", err)
		}
	}

	store, err := filekv.New(dir)
	if err != nil {
		return nil, fmt.Errorf("opening file store: %w", err)
	}

	return &Backend{Store: store, Driver: DriverFile}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Backend, error) {
	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	store := pgkv.New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing postgres store: %w", err)
	}

	return &Backend{Store: store, Driver: DriverPostgres, close: db.Close}, nil
}

func openRedis(ctx context.Context, cfg *config.Config) (*Backend, error) {
	store, err := rediskv.New(ctx, rediskv.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Backend{Store: store, Driver: DriverRedis, close: store.Close}, nil
}
