// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package backend opens the question store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-ask/cliparse"
	"github.com/danielhkuo/quickly-ask/db"
	"github.com/danielhkuo/quickly-ask/questions"
	"github.com/danielhkuo/quickly-ask/typesense"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the store for cfg.Backend and a closer releasing it.
// SQL backends are pinged and get their schema created.
func Open(ctx context.Context, cfg cliparse.Config) (questions.Store, io.Closer, error) {
	switch cfg.Backend {
	case cliparse.BackendTypesense:
		slog.Info("using Typesense backend", "url", cfg.Typesense.BaseURL())
		return typesense.New(cfg.Typesense), nopCloser{}, nil

	case cliparse.BackendPostgres, cliparse.BackendSQLite:
		dialect := db.Postgres
		if cfg.Backend == cliparse.BackendSQLite {
			dialect = db.SQLite
		}

		store, err := db.Open(dialect, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		// Verify connection
		if err := store.Health(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("database ping failed: %w", err)
		}

		if err := store.CreateSchema(); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("schema creation failed: %w", err)
		}
		slog.Info("database schema ready", "backend", cfg.Backend)

		return store, store, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
