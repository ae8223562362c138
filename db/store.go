// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/quickly-verify/models"
)

var ErrNotFound = errors.New("not found")

// Store persists audits and their inputs. Results are never stored; they
// are recomputed from the loaded snapshot.
type Store struct {
	db     *sql.DB
	dbType string
}

func NewStore(db *sql.DB, dbType string) *Store {
	return &Store{db: db, dbType: dbType}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dbType != TypePostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateAudit inserts a new, empty audit.
func (s *Store) CreateAudit(ctx context.Context, title string) (models.Audit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Audit{}, fmt.Errorf("audit title is required")
	}

	audit := models.Audit{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: fromMillis(toMillis(time.Now())),
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO audit (id, title, created_at) VALUES (?, ?, ?)
	`), audit.ID, audit.Title, toMillis(audit.CreatedAt))
	if err != nil {
		return models.Audit{}, fmt.Errorf("insert audit: %w", err)
	}
	return audit, nil
}

// GetAudit returns ErrNotFound for unknown IDs.
func (s *Store) GetAudit(ctx context.Context, id string) (models.Audit, error) {
	var (
		audit     models.Audit
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, title, created_at FROM audit WHERE id = ?
	`), id).Scan(&audit.ID, &audit.Title, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Audit{}, ErrNotFound
	}
	if err != nil {
		return models.Audit{}, fmt.Errorf("query audit: %w", err)
	}
	audit.CreatedAt = fromMillis(createdAt)
	return audit, nil
}

// ReplaceRoster swaps the audit's roster for members in one transaction.
func (s *Store) ReplaceRoster(ctx context.Context, auditID string, members []models.Member) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM member WHERE audit_id = ?`), auditID); err != nil {
			return fmt.Errorf("delete roster: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, s.rebind(`
			INSERT INTO member (audit_id, seq, van_id, name, preferred_email) VALUES (?, ?, ?, ?, ?)
		`))
		if err != nil {
			return fmt.Errorf("prepare member insert: %w", err)
		}
		defer stmt.Close()

		for i, m := range members {
			if _, err := stmt.ExecContext(ctx, auditID, i, m.VanID, m.Name, m.PreferredEmail); err != nil {
				return fmt.Errorf("insert member %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// LoadRoster returns members in the order they were parsed.
func (s *Store) LoadRoster(ctx context.Context, auditID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT van_id, name, preferred_email FROM member WHERE audit_id = ? ORDER BY seq
	`), auditID)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.VanID, &m.Name, &m.PreferredEmail); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ReplacePolls swaps the audit's poll set in one transaction.
func (s *Store) ReplacePolls(ctx context.Context, auditID string, polls []models.Poll) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM ballot WHERE audit_id = ?`), auditID); err != nil {
			return fmt.Errorf("delete ballots: %w", err)
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM poll WHERE audit_id = ?`), auditID); err != nil {
			return fmt.Errorf("delete polls: %w", err)
		}

		pollStmt, err := tx.PrepareContext(ctx, s.rebind(`
			INSERT INTO poll (audit_id, seq, name, question) VALUES (?, ?, ?, ?)
		`))
		if err != nil {
			return fmt.Errorf("prepare poll insert: %w", err)
		}
		defer pollStmt.Close()

		ballotStmt, err := tx.PrepareContext(ctx, s.rebind(`
			INSERT INTO ballot (audit_id, poll_seq, seq, username, email, submitted, choice)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`))
		if err != nil {
			return fmt.Errorf("prepare ballot insert: %w", err)
		}
		defer ballotStmt.Close()

		for i, p := range polls {
			if _, err := pollStmt.ExecContext(ctx, auditID, i, p.Name, p.Question); err != nil {
				return fmt.Errorf("insert poll %q: %w", p.Name, err)
			}
			for j, b := range p.Ballots {
				if _, err := ballotStmt.ExecContext(ctx, auditID, i, j, b.Username, b.Email, b.Time, b.Choice); err != nil {
					return fmt.Errorf("insert ballot %d of poll %q: %w", j+1, p.Name, err)
				}
			}
		}
		return nil
	})
}

// LoadPolls returns polls and ballots in their original order.
func (s *Store) LoadPolls(ctx context.Context, auditID string) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT name, question FROM poll WHERE audit_id = ? ORDER BY seq
	`), auditID)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}

	polls := []models.Poll{}
	for rows.Next() {
		p := models.Poll{Ballots: []models.Ballot{}}
		if err := rows.Scan(&p.Name, &p.Question); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate polls: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, s.rebind(`
		SELECT poll_seq, username, email, submitted, choice
		FROM ballot WHERE audit_id = ? ORDER BY poll_seq, seq
	`), auditID)
	if err != nil {
		return nil, fmt.Errorf("query ballots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pollSeq int
			b       models.Ballot
		)
		if err := rows.Scan(&pollSeq, &b.Username, &b.Email, &b.Time, &b.Choice); err != nil {
			return nil, fmt.Errorf("scan ballot: %w", err)
		}
		if pollSeq < 0 || pollSeq >= len(polls) {
			return nil, fmt.Errorf("ballot references unknown poll %d", pollSeq)
		}
		polls[pollSeq].Ballots = append(polls[pollSeq].Ballots, b)
	}
	return polls, rows.Err()
}

// AddAlias appends one alias after the existing ones.
func (s *Store) AddAlias(ctx context.Context, auditID string, alias models.Alias) error {
	// seq is taken from MAX(seq) in the insert itself. Two writers can still
	// read the same MAX under read committed, so a key clash is retried.
	var err error
	for attempt := 1; attempt <= maxAliasAttempts; attempt++ {
		_, err = s.db.ExecContext(ctx, s.rebind(`
			INSERT INTO member_alias (audit_id, seq, van_id, alias)
			SELECT ?, COALESCE(MAX(seq), -1) + 1, ?, ?
			FROM member_alias WHERE audit_id = ?
		`), auditID, alias.VanID, alias.Alias, auditID)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			break
		}
	}
	return fmt.Errorf("insert alias: %w", err)
}

const maxAliasAttempts = 5

// isUniqueViolation reports whether err is a primary key or unique
// constraint failure from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// ReplaceAliases swaps the whole alias list, as when importing a saved file.
func (s *Store) ReplaceAliases(ctx context.Context, auditID string, list []models.Alias) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM member_alias WHERE audit_id = ?`), auditID); err != nil {
			return fmt.Errorf("delete aliases: %w", err)
		}
		for i, a := range list {
			_, err := tx.ExecContext(ctx, s.rebind(`
				INSERT INTO member_alias (audit_id, seq, van_id, alias) VALUES (?, ?, ?, ?)
			`), auditID, i, a.VanID, a.Alias)
			if err != nil {
				return fmt.Errorf("insert alias %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func (s *Store) ResetAliases(ctx context.Context, auditID string) error {
	return s.ReplaceAliases(ctx, auditID, nil)
}

// LoadAliases returns aliases in the order they were added.
func (s *Store) LoadAliases(ctx context.Context, auditID string) ([]models.Alias, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT van_id, alias FROM member_alias WHERE audit_id = ? ORDER BY seq
	`), auditID)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	defer rows.Close()

	list := []models.Alias{}
	for rows.Next() {
		var a models.Alias
		if err := rows.Scan(&a.VanID, &a.Alias); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
