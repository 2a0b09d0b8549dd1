// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and manages the schema.

# Connections

Open picks the driver from the configured database type:

	conn, err := db.Open(ctx, cfg)

  - postgres: github.com/lib/pq, pooled
  - sqlite: modernc.org/sqlite, one open connection, foreign keys on

# Migrations

Migrate applies the embedded migrations for the dialect:

	if err := db.Migrate(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - already applied versions are skipped.
Migrations live in migrations/postgres and migrations/sqlite and must be
kept in step.

# Tables

  - surveys: title, description, created_at, response_count
  - questions: client supplied id, unique per survey, ordered by position
  - responses: one submission against a survey
  - answers: one value per question in a response, ordered by position

# Relationships

	surveys 1──* questions
	surveys 1──* responses
	responses 1──* answers

All foreign keys use ON DELETE CASCADE, so deleting a survey removes its
questions, responses and their answers. answers.question_id is not a
foreign key.

# JSON Columns

questions.options and answers.value hold JSON (JSONB on postgres, TEXT on
sqlite). A JSON string is a single answer, a JSON array a list.
*/
package db
