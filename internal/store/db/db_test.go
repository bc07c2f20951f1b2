package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xunop/biblioteca/internal/config"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := NewDB(config.DriverSQLite, filepath.Join(t.TempDir(), "biblioteca.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestNewDBRejects(t *testing.T) {
	_, err := NewDB(config.DriverSQLite, "")
	assert.Error(t, err)

	_, err = NewDB("mysql", "root@/library")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?"+sqlitePragmas, sqliteDSN("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&"+sqlitePragmas, sqliteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)", sqliteDSN("a.db?_pragma=foreign_keys(1)"))

	assert.Equal(t, "/data/a.db", sqlitePath("file:/data/a.db?mode=rwc"))
	assert.Equal(t, "", sqlitePath(":memory:"))
	assert.Equal(t, "", sqlitePath("file:test?mode=memory&cache=shared"))
}

func TestMigrateFreshDatabase(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	require.NoError(t, d.migrateTo(ctx, "0.2.0"))

	for _, table := range []string{"authors", "books", "genres", "borrowers", "loans", "stock", "loan_history", "logs"} {
		exist, err := d.CheckTableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exist, table)
	}

	list, err := d.FindMigrationHistoryList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "0.2.0", list[0].Version)
	assert.NotZero(t, list[0].CreatedTs)

	// A second run is a no-op.
	require.NoError(t, d.migrateTo(ctx, "0.2.0"))
	list, err = d.FindMigrationHistoryList(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMigrateFromOlderVersion(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	require.NoError(t, d.applyLatestSchema(ctx))
	_, err := d.UpsertMigrationHistory(ctx, "0.1.0")
	require.NoError(t, err)

	require.NoError(t, d.migrateTo(ctx, "0.2.3"))

	list, err := d.FindMigrationHistoryList(ctx)
	require.NoError(t, err)
	versions := []string{}
	for _, h := range list {
		versions = append(versions, h.Version)
	}
	assert.ElementsMatch(t, []string{"0.1.0", "0.2.0"}, versions)

	// The backup taken before migrating is removed afterwards.
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(d.path), "*_backup.db"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMinorVersionList(t *testing.T) {
	d := newTestDB(t)
	list, err := d.minorVersionList()
	require.NoError(t, err)
	assert.Equal(t, []string{"0.2"}, list)
}

func TestForeignKeysEnabled(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)
	require.NoError(t, d.Migrate(ctx))

	var enabled int
	require.NoError(t, d.GetContext(ctx, &enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)

	_, err := d.ExecContext(ctx, "INSERT INTO books (title, author_id, publication_year, genre_id) VALUES ('x', 42, 1900, 42)")
	assert.Error(t, err)
}

func TestBackupSkipsMemory(t *testing.T) {
	d, err := NewDB(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer d.Close()

	path, err := d.backup()
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupCopiesFile(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)
	require.NoError(t, d.Migrate(ctx))

	path, err := d.backup()
	require.NoError(t, err)
	require.NotEmpty(t, path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestUnicodeLowerFunction(t *testing.T) {
	d := newTestDB(t)
	var folded string
	require.NoError(t, d.QueryRowxContext(context.Background(), "SELECT "+SQLiteFoldFunc+"('ÉRICO Veríssimo')").Scan(&folded))
	assert.Equal(t, "érico veríssimo", folded)

	var null *string
	require.NoError(t, d.QueryRowxContext(context.Background(), "SELECT "+SQLiteFoldFunc+"(NULL)").Scan(&null))
	assert.Nil(t, null)
}
