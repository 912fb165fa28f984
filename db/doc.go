// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the self-hosted question store, for PostgreSQL or SQLite.

# Schema Creation

CreateSchema creates one table per subject, named like the Typesense
collection it replaces:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

	costs_questions
	zakat_questions
	issues_questions
	administrative_questions
	systems_questions

Each has columns id, question, answer, subject, search_text, created_at.

# Store

Store implements questions.Store:

	store, err := db.Open(db.Postgres, "postgres://...")

Callers register the driver (lib/pq for postgres, modernc.org/sqlite for
sqlite). Queries are written with ? placeholders and rebound to $N for
postgres.

Case folding happens in Go: search_text holds the lowercased question and
the query is lowercased the same way. SQLite's LOWER folds ASCII only.
*/
package db
