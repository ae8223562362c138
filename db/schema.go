// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements run unchanged on PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Audits
CREATE TABLE IF NOT EXISTS audit (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

-- Roster members, in file order
CREATE TABLE IF NOT EXISTS member (
    audit_id TEXT NOT NULL REFERENCES audit(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    van_id TEXT NOT NULL,
    name TEXT NOT NULL,
    preferred_email TEXT NOT NULL,
    PRIMARY KEY (audit_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_member_van_id ON member(audit_id, van_id);

-- Polls, in file order
CREATE TABLE IF NOT EXISTS poll (
    audit_id TEXT NOT NULL REFERENCES audit(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    name TEXT NOT NULL,
    question TEXT NOT NULL,
    PRIMARY KEY (audit_id, seq)
);

-- Ballots, in file order within each poll
CREATE TABLE IF NOT EXISTS ballot (
    audit_id TEXT NOT NULL REFERENCES audit(id) ON DELETE CASCADE,
    poll_seq INTEGER NOT NULL,
    seq INTEGER NOT NULL,
    username TEXT NOT NULL,
    email TEXT NOT NULL,
    submitted TEXT NOT NULL,
    choice TEXT NOT NULL,
    PRIMARY KEY (audit_id, poll_seq, seq)
);

-- Operator aliases, in the order they were added
CREATE TABLE IF NOT EXISTS member_alias (
    audit_id TEXT NOT NULL REFERENCES audit(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    van_id TEXT NOT NULL,
    alias TEXT NOT NULL,
    PRIMARY KEY (audit_id, seq)
);
`
