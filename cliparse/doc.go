// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - MaxUploadBytes: Largest accepted upload body (default: 10 MiB)
  - EnvFile: Optional dotenv file loaded before reading the environment

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-max-upload   Upload limit, any size humanize understands ("10MiB", "512 kB")
	-env-file     Dotenv file
	-admin-salt   Admin key salt

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	MAX_UPLOAD_SIZE → -max-upload
	ADMIN_KEY_SALT  → -admin-salt

CLI flags take precedence over environment variables. Variables from
-env-file never overwrite ones already set in the process environment.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - ADMIN_KEY_SALT is missing
  - the database type is not sqlite or postgres
  - the port or upload size does not parse
*/
package cliparse
