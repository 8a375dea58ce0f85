// Package database opens the configured document store and manages the postgres schema.
package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	appfs "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/fs"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/memstore"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/mongostore"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/pgstore"
)

// DB is an open document store. SQL is set for the postgres engine only.
type DB struct {
	docstore.Store
	SQL *sqlx.DB
}

// Open connects to the store selected by conf.Database.Engine.
// Mongo indexes are ensured on open; postgres migrations are applied by Migrate.
func Open(ctx context.Context, conf *core.Config) (*DB, error) {
	switch conf.Database.Engine {
	case core.EngineMemory:
		return &DB{Store: memstore.New()}, nil

	case core.EngineMongo:
		store, err := mongostore.Open(ctx, conf.Database.URI, conf.Database.Name)
		if err != nil {
			return nil, err
		}
		if err = store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return &DB{Store: store}, nil

	case core.EnginePostgres:
		db, err := sqlx.Open("postgres", conf.Database.URI)
		if err != nil {
			return nil, errors.Wrap(err, "opening database")
		}
		if err = ping(ctx, db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &DB{Store: pgstore.New(db), SQL: db}, nil

	default:
		return nil, errors.Errorf("unknown database engine %q", conf.Database.Engine)
	}
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

// RunMigration runs a goose command (up, down, status, ...) against the embedded migrations.
func RunMigration(ctx context.Context, db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	return goose.RunContext(ctx, command, db, "migrations", args...)
}

// Migrate brings the postgres schema up to date. Other engines need no migration.
func Migrate(ctx context.Context, db *DB) error {
	if db.SQL == nil {
		return nil
	}
	if err := RunMigration(ctx, db.SQL.DB, "up"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
