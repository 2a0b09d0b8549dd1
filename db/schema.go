// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/topsurvey/survey-api/cliparse"
)

//go:embed migrations
var migrations embed.FS

// Migrate brings the schema up to the latest embedded migration.
// Safe to call on every start - ErrNoChange is not an error.
//
// The migrator is never closed since the sqlite driver would close the
// caller's *sql.DB. Postgres migrates on a single pooled connection that is
// handed back when Migrate returns.
func Migrate(conn *sql.DB, dbType string) error {
	ctx := context.Background()

	src, err := iofs.New(migrations, "migrations/"+dbType)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var dst database.Driver
	switch dbType {
	case cliparse.DatabasePostgres:
		pgConn, cerr := conn.Conn(ctx)
		if cerr != nil {
			return fmt.Errorf("failed to acquire connection: %w", cerr)
		}
		defer pgConn.Close()
		dst, err = postgres.WithConnection(ctx, pgConn, &postgres.Config{})
	case cliparse.DatabaseSQLite:
		dst, err = sqlite.WithInstance(conn, &sqlite.Config{})
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", src, dbType, dst)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		// already up to date
	case err != nil:
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
