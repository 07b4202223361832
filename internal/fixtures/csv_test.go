package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadTable(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "functional_alltypes.csv",
		"id,bool_col,string_col\n1,1,foo\n2,0,\n")

	tbl, err := ReadTable(dir, "functional_alltypes")
	if err != nil {
		t.Fatalf("ReadTable error: %v", err)
	}
	if tbl.Name != "functional_alltypes" {
		t.Fatalf("name=%q", tbl.Name)
	}
	if len(tbl.Columns) != 3 || tbl.Columns[1] != "bool_col" {
		t.Fatalf("columns=%v", tbl.Columns)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows=%d", len(tbl.Rows))
	}
	if tbl.Rows[0][1] != true || tbl.Rows[1][1] != false {
		t.Fatalf("bool_col not coerced: %v %v", tbl.Rows[0][1], tbl.Rows[1][1])
	}
	if tbl.Rows[1][2] != nil {
		t.Fatalf("empty field should load as NULL, got %v", tbl.Rows[1][2])
	}
	if tbl.Rows[0][2] != "foo" {
		t.Fatalf("string_col=%v", tbl.Rows[0][2])
	}
}

func TestReadTableRejectsBadBool(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "functional_alltypes.csv", "id,bool_col\n1,maybe\n")
	_, err := ReadTable(dir, "functional_alltypes")
	if err == nil {
		t.Fatal("expected error for unrecognized bool_col value")
	}
	if !strings.Contains(err.Error(), "maybe") {
		t.Fatalf("error should name the bad value: %v", err)
	}
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(t.TempDir(), "batting")
	if err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestReadTableEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "empty.csv", "")
	if _, err := ReadTable(dir, "empty"); err == nil {
		t.Fatal("expected error for fixture without header")
	}
}

func TestReadTableHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "diamonds.csv", "carat,cut\n")
	tbl, err := ReadTable(dir, "diamonds")
	if err != nil {
		t.Fatalf("ReadTable error: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(tbl.Rows))
	}
}
