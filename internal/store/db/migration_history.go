package db

import (
	"context"

	"github.com/Xunop/biblioteca/internal/config"
)

type MigrationHistory struct {
	Version   string `db:"version"`
	CreatedTs int64  `db:"created_ts"`
}

func (d *DB) UpsertMigrationHistory(ctx context.Context, version string) (*MigrationHistory, error) {
	stmt := d.Rebind(`
		INSERT INTO migration_history (
			version
		)
		VALUES (?)
		ON CONFLICT(version) DO UPDATE
		SET
			version=EXCLUDED.version
		RETURNING version, created_ts
	`)
	var migrationHistory MigrationHistory
	if err := d.QueryRowxContext(ctx, stmt, version).StructScan(&migrationHistory); err != nil {
		return nil, err
	}

	return &migrationHistory, nil
}

func (d *DB) FindMigrationHistoryList(ctx context.Context) ([]*MigrationHistory, error) {
	list := make([]*MigrationHistory, 0)
	query := "SELECT version, created_ts FROM migration_history ORDER BY created_ts DESC"
	if err := d.SelectContext(ctx, &list, query); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query := "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?"
	if d.driver != config.DriverSQLite {
		query = "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?"
	}
	var count int
	if err := d.GetContext(ctx, &count, d.Rebind(query), tableName); err != nil {
		return false, err
	}

	return count > 0, nil
}
