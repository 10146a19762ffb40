package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
)

var migrationTemplates = template.Must(template.New("up").Parse(`-- Migration: {{.Name}}
-- Created: {{.Timestamp}}
-- Description: {{.Description}}
-- Dialect: {{.Dialect}}

`))

func init() {
	template.Must(migrationTemplates.New("down").Parse(`-- Migration: {{.Name}} (Rollback)
-- Created: {{.Timestamp}}
-- Dialect: {{.Dialect}}

`))
}

// Dialects lists the migration directories kept in sync for every schema change
var Dialects = []string{DriverSQLite, DriverPostgres}

// MigrationFile represents a migration file pair for one dialect
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	Dialect     string
	UpPath      string
	DownPath    string
}

// CreateMigration creates an empty up/down pair with the same version in
// migrationsDir/<dialect> for every dialect.
func CreateMigration(migrationsDir, name, description string) ([]*MigrationFile, error) {
	base := sanitizeName(name)
	if base == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	now := time.Now()
	version := now.Format("20060102150405")

	files := make([]*MigrationFile, 0, len(Dialects))
	for _, dialect := range Dialects {
		dir := filepath.Join(migrationsDir, dialect)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create migrations directory: %w", err)
		}

		stem := filepath.Join(dir, version+"_"+base)
		mf := &MigrationFile{
			Version:     version,
			Name:        name,
			Description: description,
			Timestamp:   now.Format(time.RFC3339),
			Dialect:     dialect,
			UpPath:      stem + ".up.sql",
			DownPath:    stem + ".down.sql",
		}

		if err := writeMigrationFile(mf.UpPath, "up", mf); err != nil {
			return nil, err
		}
		if err := writeMigrationFile(mf.DownPath, "down", mf); err != nil {
			_ = os.Remove(mf.UpPath)
			return nil, err
		}
		files = append(files, mf)
	}

	return files, nil
}

func writeMigrationFile(path, tmpl string, data *MigrationFile) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if err := migrationTemplates.ExecuteTemplate(f, tmpl, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// sanitizeName lowercases the name and joins its alphanumeric words with underscores
func sanitizeName(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})

	var b strings.Builder
	for _, w := range words {
		clean := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, w)
		if clean == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString(clean)
	}
	return b.String()
}

// ListMigrations returns the sorted migration names found for a dialect
func ListMigrations(migrationsDir, dialect string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(migrationsDir, dialect))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}
