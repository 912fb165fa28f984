// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotEnv never overrides variables that are already set, and a missing
file is fine.

# Config Fields

  - Port: Server listen port (default: 3318)
  - Backend: typesense (default), postgres or sqlite
  - DatabaseURL: connection string for the SQL backends
  - Typesense: node address, both API keys, timeouts and retries
  - AdminKey: write lock for questions (optional)
  - PerPage: search result limit (default: 5)
  - CallerName: name on the fake call (default: Mama)

# CLI Flags

	-p          Server port
	-b          Backend
	-d          Database URL
	-admin-key  Admin key
	-per-page   Search result limit
	-caller     Caller name

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	BACKEND         → -b
	DATABASE_URL    → -d
	ADMIN_KEY       → -admin-key
	SEARCH_PER_PAGE → -per-page
	CALLER_NAME     → -caller

Typesense settings come from the environment only:

	TYPESENSE_HOST, TYPESENSE_PORT, TYPESENSE_PROTOCOL,
	TYPESENSE_API_SEARCH_KEY, TYPESENSE_ADMIN_API_KEY

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - any Typesense variable is missing with the typesense backend
    (ErrMissingTypesenseConfig)
  - DATABASE_URL is missing with a SQL backend
  - the backend name, a port or the page size is invalid
*/
package cliparse
