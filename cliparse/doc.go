// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv pulls a .env file into the environment, then ParseFlags returns
a Config struct with all settings:

	if err := cliparse.LoadDotEnv(); err != nil {
		...
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 80)
  - DatabaseURL: PostgreSQL or SQLite connection string (required)
  - DatabaseType: "postgres" or "sqlite" (guessed from the URL if unset)
  - AllowedOrigins: CORS allow-list
  - LogLevel, LogFormat: slog handler settings

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-origins     Comma separated CORS origins
	-log-level   debug, info, warn, error
	-log-format  text or json

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CORS_ORIGINS  → -origins
	LOG_LEVEL     → -log-level
	LOG_FORMAT    → -log-format

When neither -d nor DATABASE_URL is set, a PostgreSQL URL is assembled from
DB_HOST, DB_PORT (5432), DB_NAME (surveys), DB_USER and DB_PASSWORD.

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the .env file.
*/
package cliparse
