// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Verify API server.

Quickly Verify checks the ballots of an online meeting poll against an
organization's membership roster. It decides which ballots came from
eligible members, drops repeat votes from the same member, and tallies
the rest.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=verify.db ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt ...

Variables can also come from a dotenv file:

	go run . -env-file .env

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_UPLOAD_SIZE (-max-upload): Upload limit (default: 10 MiB)

# Architecture

The verification core is pure and has no I/O:

  - roster: Membership roster parsing, including spaced UTF-16 exports
  - pollexport: Multi-poll report parsing
  - livepoll: Meeting poll report JSON to polls
  - names: Name normalization
  - aliases: Operator alias registry and YAML files
  - reconcile: Matching, duplicate detection and tallies

Around it sits the HTTP service:

  - handlers: HTTP request handlers (audits, aliases, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and upload helpers
  - models: Domain, request and response types
  - auth: Admin key derivation and validation
  - db: Connections, schema and the audit store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
