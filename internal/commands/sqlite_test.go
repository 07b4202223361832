package commands

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func TestSqliteCommand(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.sql")
	err := os.WriteFile(schema, []byte(`
CREATE TABLE batting (playerID TEXT, yearID INTEGER);
CREATE TABLE diamonds (carat REAL, cut TEXT);
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "batting.csv"), []byte("playerID,yearID\nab,1871\ncd,1872\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "diamonds.csv"), []byte("carat,cut\n0.23,Ideal\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dbPath := filepath.Join(dir, "ibis_testing.db")
	cmd := New()
	err = cmd.Run(context.Background(), []string{
		"datamgr", "sqlite", "-S", schema, "-d", dbPath, "-D", dir, "batting", "diamonds",
	})
	if err != nil {
		t.Fatalf("sqlite command error: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM batting").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("batting count=%d want 2", count)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM diamonds").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("diamonds count=%d want 1", count)
	}
}
