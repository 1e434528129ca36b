// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session persists the current search session in a SQLite database so
// that search, select, and export can run as separate CLI invocations. The
// store holds exactly one session: each new search replaces it wholesale, and
// only the selected flag of individual rows changes in between.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pleabargain/market-scout/pkg/types"
)

// ErrNoSession is returned by Load when no search has been stored yet.
var ErrNoSession = errors.New("no stored search session; run a search first")

// Session is the stored state of the most recent search.
type Session struct {
	// Query is the provider query string the search ran with.
	Query string

	// Regions lists the selected region display names, in selection order.
	Regions []string

	// RegionCode is the geo code the search was issued with, if any.
	RegionCode string

	// CreatedAt is when the search ran.
	CreatedAt time.Time

	// Results holds the normalized results with their selection marks, in
	// provider ranking order.
	Results []types.Result
}

// Store manages the session SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the session database at path, creating parent
// directories and the schema as needed.
func Open(cfg types.SessionConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("session database path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			query TEXT NOT NULL,
			regions TEXT NOT NULL,
			region_code TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			rank INTEGER PRIMARY KEY,
			selected INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL,
			summary TEXT NOT NULL,
			url TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace overwrites the stored session with sess in one transaction.
func (s *Store) Replace(ctx context.Context, sess Session) error {
	regions, err := json.Marshal(sess.Regions)
	if err != nil {
		return fmt.Errorf("encoding regions: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("clearing results: %w", err)
	}

	createdAt := sess.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO session (id, query, regions, region_code, created_at) VALUES (1, ?, ?, ?, ?)`,
		sess.Query, string(regions), sess.RegionCode, createdAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	for i, r := range sess.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO results (rank, selected, title, summary, url) VALUES (?, ?, ?, ?, ?)`,
			i+1, boolToInt(r.Selected), r.Title, r.Summary, r.URL,
		); err != nil {
			return fmt.Errorf("inserting result %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Load returns the stored session, or ErrNoSession when none exists.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	var (
		sess      Session
		regions   string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT query, regions, region_code, created_at FROM session WHERE id = 1`,
	).Scan(&sess.Query, &regions, &sess.RegionCode, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if err := json.Unmarshal([]byte(regions), &sess.Regions); err != nil {
		return nil, fmt.Errorf("decoding regions: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sess.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT selected, title, summary, url FROM results ORDER BY rank`,
	)
	if err != nil {
		return nil, fmt.Errorf("loading results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r        types.Result
			selected int
		)
		if err := rows.Scan(&selected, &r.Title, &r.Summary, &r.URL); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Selected = selected != 0
		sess.Results = append(sess.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	return &sess, nil
}

// SetSelected sets the selection mark on the given 1-based ranks. Unknown
// ranks are an error and leave every mark unchanged.
func (s *Store) SetSelected(ctx context.Context, ranks []int, selected bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rank := range ranks {
		res, err := tx.ExecContext(ctx,
			`UPDATE results SET selected = ? WHERE rank = ?`, boolToInt(selected), rank,
		)
		if err != nil {
			return fmt.Errorf("updating rank %d: %w", rank, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating rank %d: %w", rank, err)
		}
		if n == 0 {
			return fmt.Errorf("no result with rank %d", rank)
		}
	}

	return tx.Commit()
}

// Clear removes the stored session, if any.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("clearing results: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
