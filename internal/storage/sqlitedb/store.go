// Package sqlitedb populates the SQLite test database from CSV fixtures.
package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/John-Boik/ibis/internal/fixtures"
)

const defaultPath = "ibis_testing.db"

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sql.DB
}

// Open resolves path to an absolute location, removes any pre-existing
// database file and opens a fresh one. Removal errors are ignored so a stale
// or missing file never blocks a rebuild.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	os.Remove(abs)

	db, err := sql.Open("sqlite", abs)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &Store{path: abs, db: db}, nil
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RunScript executes the DDL script text. The driver accepts multi-statement
// text, so the whole script runs in one call.
func (s *Store) RunScript(ctx context.Context, script string) error {
	if _, err := s.db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("run schema script: %w", err)
	}
	return nil
}

// LoadTable appends the fixture rows within one transaction.
func (s *Store) LoadTable(ctx context.Context, t *fixtures.Table) error {
	if len(t.Rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, insertSQL(t))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert for %s: %w", t.Name, err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert into %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

// Vacuum reclaims space and refreshes planner statistics.
func (s *Store) Vacuum(ctx context.Context) error {
	for _, stmt := range []string{"VACUUM;", "ANALYZE;"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func insertSQL(t *fixtures.Table) string {
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quoteIdent(c)
		marks[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(t.Name), strings.Join(cols, ", "), strings.Join(marks, ", "),
	)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
