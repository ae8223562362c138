// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and persists audit inputs.

# Connections

Open accepts either driver name and pings before returning:

	conn, err := db.Open(db.TypeSQLite, "verify.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

SQLite connections get foreign keys and a busy timeout through DSN pragmas.
PostgreSQL URLs are passed to lib/pq unchanged.

# Tables

  - audit: One row per verification session
  - member: Roster rows, keyed by (audit_id, seq)
  - poll: Parsed polls, keyed by (audit_id, seq)
  - ballot: Ballots per poll, keyed by (audit_id, poll_seq, seq)
  - member_alias: Operator aliases in insertion order

The seq columns preserve file order, which matching and tally order depend
on. Timestamps are stored as Unix milliseconds.

# Store

Store wraps the connection. Queries are written with ? placeholders and
rebound to $N for PostgreSQL. Roster, poll, and alias uploads replace the
previous set inside one transaction. Results are not stored.
*/
package db
