package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add users table", "add_users_table"},
		{"Add-Logo-Column", "add_logo_column"},
		{"ADD_USERS_TABLE", "add_users_table"},
		{"add__users__table", "add_users_table"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	files, err := CreateMigration(dir, "add business logo", "Store business logos")
	require.NoError(t, err)
	require.Len(t, files, len(Dialects))

	for i, mf := range files {
		assert.Equal(t, Dialects[i], mf.Dialect)
		assert.Len(t, mf.Version, 14)
		assert.Equal(t, files[0].Version, mf.Version)
		assert.Equal(t, filepath.Join(dir, mf.Dialect), filepath.Dir(mf.UpPath))
		assert.True(t, strings.HasSuffix(mf.UpPath, "_add_business_logo.up.sql"))
		assert.True(t, strings.HasSuffix(mf.DownPath, "_add_business_logo.down.sql"))

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "Store business logos")
		assert.Contains(t, string(up), "Dialect: "+mf.Dialect)

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Rollback")
	}
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	sqliteDir := filepath.Join(dir, DriverSQLite)
	require.NoError(t, os.MkdirAll(sqliteDir, 0o755))
	for _, name := range []string{"000002_b.up.sql", "000002_b.down.sql", "000001_a.up.sql", "000001_a.down.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(sqliteDir, name), nil, 0o644))
	}

	names, err := ListMigrations(dir, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a", "000002_b"}, names)

	names, err = ListMigrations(dir, DriverPostgres)
	require.NoError(t, err)
	assert.Empty(t, names)
}
