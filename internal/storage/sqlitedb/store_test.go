package sqlitedb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/John-Boik/ibis/internal/fixtures"
)

const testSchema = `
CREATE TABLE functional_alltypes (
	id INTEGER,
	bool_col BOOLEAN,
	string_col TEXT
);
CREATE INDEX alltypes_id_idx ON functional_alltypes(id);
`

func TestOpenRemovesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ibis_testing.db")
	if err := os.WriteFile(path, []byte("not a database"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer store.Close()

	// A stale file would make the schema script fail.
	if err := store.RunScript(context.Background(), testSchema); err != nil {
		t.Fatalf("RunScript error: %v", err)
	}
}

func TestLoadTable(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ibis_testing.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.RunScript(ctx, testSchema); err != nil {
		t.Fatalf("RunScript error: %v", err)
	}

	tbl := &fixtures.Table{
		Name:    "functional_alltypes",
		Columns: []string{"id", "bool_col", "string_col"},
		Rows: [][]any{
			{"1", true, "foo"},
			{"2", false, nil},
		},
	}
	if err := store.LoadTable(ctx, tbl); err != nil {
		t.Fatalf("LoadTable error: %v", err)
	}
	if err := store.Vacuum(ctx); err != nil {
		t.Fatalf("Vacuum error: %v", err)
	}

	var count int
	if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM functional_alltypes").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count=%d want 2", count)
	}

	var s sql.NullString
	if err := store.db.QueryRowContext(ctx, "SELECT string_col FROM functional_alltypes WHERE id = 2").Scan(&s); err != nil {
		t.Fatal(err)
	}
	if s.Valid {
		t.Fatalf("expected NULL string_col, got %q", s.String)
	}
}

func TestLoadTableEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ibis_testing.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer store.Close()

	tbl := &fixtures.Table{Name: "missing", Columns: []string{"id"}}
	if err := store.LoadTable(context.Background(), tbl); err != nil {
		t.Fatalf("loading zero rows should be a no-op, got %v", err)
	}
}

func TestInsertSQLQuotesIdentifiers(t *testing.T) {
	tbl := &fixtures.Table{Name: "awards_players", Columns: []string{"playerID", "yearID"}}
	got := insertSQL(tbl)
	want := `INSERT INTO "awards_players" ("playerID", "yearID") VALUES (?, ?)`
	if got != want {
		t.Fatalf("insertSQL=%q want %q", got, want)
	}
}
