// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/topsurvey/survey-api/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg cliparse.Config) (*sql.DB, error) {
	var conn *sql.DB
	var err error

	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		conn, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxIdleTime(5 * time.Minute)
		conn.SetConnMaxLifetime(2 * time.Hour)
	case cliparse.DatabaseSQLite:
		conn, err = sql.Open("sqlite", SQLiteDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// one writer at a time; transactions queue on the pool instead
		// of failing with SQLITE_BUSY on lock upgrade
		conn.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// SQLiteDSN adds the pragmas the schema relies on. Cascades need
// foreign_keys on for every connection.
func SQLiteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if !strings.Contains(dsn, "foreign_keys") {
		dsn = appendParam(dsn, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		dsn = appendParam(dsn, "_pragma=busy_timeout(5000)")
	}
	return dsn
}

func appendParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}
