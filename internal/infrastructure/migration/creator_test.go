package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Buy Orders Table")
	require.NoError(t, err)

	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, mf.UpPath, "add_buy_orders_table.up.sql")
	assert.Contains(t, mf.DownPath, "add_buy_orders_table.down.sql")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Users", "add_users"},
		{"add--users", "add_users"},
		{"trailing ", "trailing"},
		{"MiXeD123", "mixed123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first")
	require.NoError(t, err)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Contains(t, migrations[0], "first")

	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		migrations, err := ListMigrations(dir + "/nope")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
