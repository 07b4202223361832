// Package fixtures reads CSV fixture files into a form both database loaders
// can append from.
package fixtures

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table holds one fixture CSV: the header row naming the target columns and
// the data records in file order.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// ReadTable loads <name>.csv from dataDir.
func ReadTable(dataDir, name string) (*Table, error) {
	path := filepath.Join(dataDir, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("fixture %s has no header row", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read fixture header %s: %w", path, err)
	}

	t := &Table{Name: name, Columns: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", path, err)
		}
		row := make([]any, len(rec))
		for i, field := range rec {
			v, err := convert(header[i], field)
			if err != nil {
				return nil, fmt.Errorf("fixture %s: %w", path, err)
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// convert maps a raw CSV field to a driver value. Empty fields load as NULL,
// and bool_col carries 0/1 flags that boolean columns reject as text.
func convert(column, field string) (any, error) {
	if field == "" {
		return nil, nil
	}
	if column == "bool_col" {
		switch strings.ToLower(field) {
		case "1", "t", "true":
			return true, nil
		case "0", "f", "false":
			return false, nil
		default:
			return nil, fmt.Errorf("bool_col value %q is not a boolean", field)
		}
	}
	return field, nil
}
