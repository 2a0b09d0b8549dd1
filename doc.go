// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey API server.

The service stores surveys (ordered lists of questions) and the responses
submitted to them, and serves both as JSON over HTTP.

# Starting the Server

	DATABASE_URL=postgres://user:pw@localhost:5432/surveys go run .

Or with flags, against a local SQLite file:

	go run . -p 8080 -t sqlite -d ./surveys.db

A .env file in the working directory is loaded first. Variables already
set in the environment are not overridden by it.

# Configuration

  - PORT (-p): Server port (default: 80)
  - DATABASE_URL (-d): Connection string. When unset it is built from
    DB_HOST, DB_PORT, DB_NAME, DB_USER and DB_PASSWORD.
  - DATABASE_TYPE (-t): postgres or sqlite, guessed from the URL when unset
  - CORS_ORIGINS (-origins): Comma separated allow-list
  - LOG_LEVEL (-log-level): debug, info, warn or error
  - LOG_FORMAT (-log-format): text or json

# Architecture

  - handlers: HTTP request handlers (surveys, responses)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request metrics, JSON helpers
  - store: Transactional persistence for surveys and responses
  - metrics: Prometheus collectors
  - models: Request/response types
  - db: Connection setup and embedded migrations
  - cliparse: Configuration parsing

Migrations run on startup. SIGINT or SIGTERM drains in-flight requests
before exiting.
*/
package main
