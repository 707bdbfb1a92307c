package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks every SQL migration in dir: versioned snake_case
// filenames, no duplicate versions, and both goose direction markers present.
// Run before deploys so a malformed file fails in CI instead of against the
// production schema.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	versions := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}

		name := e.Name()
		m := migrationFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("migration %q does not match <version>_<snake_case_name>.sql", name)
		}
		if prev, ok := versions[m[1]]; ok {
			return fmt.Errorf("version %s used by both %q and %q", m[1], prev, name)
		}
		versions[m[1]] = name

		if err := validateMigrationFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}

	return nil
}

func validateMigrationFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file %q: %w", path, err)
	}

	txt := string(b)
	up := strings.Index(txt, "-- +goose Up")
	down := strings.Index(txt, "-- +goose Down")
	switch {
	case up < 0:
		return fmt.Errorf("migration %q missing \"-- +goose Up\"", filepath.Base(path))
	case down < 0:
		return fmt.Errorf("migration %q missing \"-- +goose Down\"", filepath.Base(path))
	case down < up:
		return fmt.Errorf("migration %q has Down before Up", filepath.Base(path))
	}
	return nil
}
