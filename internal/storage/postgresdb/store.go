// Package postgresdb recreates and populates the postgres test database.
package postgresdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/lib/pq"

	"github.com/John-Boik/ibis/internal/fixtures"
)

// Config holds connection parameters sourced from the environment.
type Config struct {
	Host     string
	User     string
	Password string
	Database string
}

// URL renders the config as a postgres connection URL. CI databases run
// without TLS, so sslmode is disabled.
func (c Config) URL() string {
	u := &url.URL{
		Scheme:   "postgres",
		Host:     c.Host,
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	return u.String()
}

// Store wraps a connection pool against one database.
type Store struct {
	db *sql.DB
}

// Connect opens a pool against the database named in cfg.
func Connect(cfg Config) (*Store, error) {
	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Recreate drops and recreates the target database. It connects to the
// postgres maintenance database because the target cannot be dropped from
// within itself, and runs each statement autocommitted since CREATE DATABASE
// refuses to run inside a transaction.
func Recreate(ctx context.Context, cfg Config, database string) error {
	admin := cfg
	admin.Database = "postgres"
	db, err := sql.Open("postgres", admin.URL())
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	stmts := []string{
		fmt.Sprintf("DROP DATABASE IF EXISTS %s", pq.QuoteIdentifier(database)),
		fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(database)),
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("recreate database %s: %w", database, err)
		}
	}
	return nil
}

// RunScript executes the DDL script inside one transaction.
func (s *Store) RunScript(ctx context.Context, script string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, script); err != nil {
		tx.Rollback()
		return fmt.Errorf("run schema script: %w", err)
	}
	return tx.Commit()
}

// LoadTable appends the fixture rows with COPY in one transaction.
func (s *Store) LoadTable(ctx context.Context, t *fixtures.Table) error {
	if len(t.Rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(t.Name, t.Columns...))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare copy for %s: %w", t.Name, err)
	}

	for _, row := range t.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("copy into %s: %w", t.Name, err)
		}
	}
	// Flush the buffered copy stream.
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		tx.Rollback()
		return fmt.Errorf("finish copy into %s: %w", t.Name, err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// VacuumAnalyze compacts the loaded tables and refreshes statistics. VACUUM
// cannot run inside a transaction, so this uses a plain autocommitted Exec.
func (s *Store) VacuumAnalyze(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM FULL ANALYZE")
	return err
}
