// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Ask server.

Quickly Ask is a study-question lookup: pick a subject, type a few words,
and matching questions come back with the query highlighted. Tapping the
page title four times in quick succession brings up a fake incoming call
that covers the page.

# Starting the Server

The server reads a .env file if present, then environment variables or
CLI flags:

	TYPESENSE_HOST=localhost ... go run .

Or with a self-hosted database:

	go run . -b sqlite -d questions.db
	go run . -b postgres -d "postgres://..."

# Configuration

Typesense backend (default), all required:

  - TYPESENSE_HOST, TYPESENSE_PORT, TYPESENSE_PROTOCOL
  - TYPESENSE_API_SEARCH_KEY: health checks and searches
  - TYPESENSE_ADMIN_API_KEY: collections and writes

SQL backends:

  - BACKEND (-b): typesense, postgres or sqlite
  - DATABASE_URL (-d): connection string or SQLite file

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - ADMIN_KEY (-admin-key): required for adding and deleting when set
  - SEARCH_PER_PAGE (-per-page): result limit (default: 5)
  - CALLER_NAME (-caller): name on the fake call (default: Mama)

# Architecture

  - handlers: HTTP handlers (questions, decoy sessions, HTML page)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin key, JSON helpers
  - questions: Search, add and delete over a Store
  - typesense: Typesense REST client
  - db: PostgreSQL and SQLite store
  - backend: Store selection from configuration
  - decoy: Tap detection and the fake call state machine
  - highlight: Query highlighting
  - seed: Sample questions
  - models: Request/response types
  - auth: Admin key checks
  - cliparse: Configuration parsing

The qactl command in cmd/qactl manages collections and questions from
the shell.

See package documentation for each component.
*/
package main
