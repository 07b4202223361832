// Package envlist builds the environment variable listing describing where
// fixture data lives for a test run.
package envlist

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"
)

// Parse splits NAME=VALUE pairs into a map. Only the first '=' separates the
// name from the value, so values may themselves contain '='.
func Parse(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("environment variables must be of the form NAME=VALUE. %s is not in this format", pair)
		}
		vars[name] = value
	}
	return vars, nil
}

// Defaults returns the fixture variables for dataDir.
func Defaults(dataDir string) map[string]string {
	return map[string]string{
		"IBIS_TEST_IMPALA_HOST":    "impala",
		"IBIS_TEST_NN_HOST":        "impala",
		"IBIS_TEST_IMPALA_POST":    "21050",
		"IBIS_TEST_WEBHDFS_PORT":   "50070",
		"IBIS_TEST_WEBHDFS_USER":   "ubuntu",
		"IBIS_TEST_SQLITE_DB_PATH": filepath.Join(dataDir, "ibis_testing.db"),
		"DIAMONDS_CSV":             filepath.Join(dataDir, "diamonds.csv"),
		"BATTING_CSV":              filepath.Join(dataDir, "batting.csv"),
		"AWARDS_PLAYERS_CSV":       filepath.Join(dataDir, "awards_players.csv"),
		"FUNCTIONAL_ALLTYPES_CSV":  filepath.Join(dataDir, "functional_alltypes.csv"),
		"IBIS_TEST_POSTGRES_DB":    "ibis_testing",
		"IBIS_POSTGRES_USER":       CurrentUser(),
		"IBIS_POSTGRES_PASS":       "",
	}
}

// Render returns the variables as sorted NAME=VALUE lines.
func Render(vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = name + "=" + vars[name]
	}
	return strings.Join(lines, "\n")
}

// CurrentUser returns the OS user name, falling back to $USER.
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
