package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Xunop/biblioteca/internal/log"
	"github.com/Xunop/biblioteca/internal/version"
)

const latestSchemaFileName = "LATEST_SCHEMA.sql"

//go:embed migration
var migrationFS embed.FS

// Migrate brings the schema up to the current version. A fresh database gets
// the latest schema, an existing one gets every minor version migration newer
// than its last recorded version.
func (d *DB) Migrate(ctx context.Context) error {
	return d.migrateTo(ctx, version.GetCurrentVersion())
}

func (d *DB) migrateTo(ctx context.Context, currentVersion string) error {
	exist, err := d.CheckTableExists(ctx, "migration_history")
	if err != nil {
		return errors.Wrap(err, "failed to check migration_history table")
	}
	if !exist {
		log.Info("Applying latest schema", zap.String("driver", d.driver), zap.String("version", currentVersion))
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	migrationHistoryList, err := d.FindMigrationHistoryList(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}
	// The table exists but nothing was recorded, the latest schema is idempotent.
	if len(migrationHistoryList) == 0 {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	migrationHistoryVersionList := make([]string, 0, len(migrationHistoryList))
	for _, migrationHistory := range migrationHistoryList {
		migrationHistoryVersionList = append(migrationHistoryVersionList, migrationHistory.Version)
	}
	sort.Sort(version.SortVersion(migrationHistoryVersionList))
	latestMigrationHistoryVersion := migrationHistoryVersionList[len(migrationHistoryVersionList)-1]

	if !version.IsVersionGreaterThan(version.GetSchemaVersion(currentVersion), latestMigrationHistoryVersion) {
		return nil
	}

	backupPath, err := d.backup()
	if err != nil {
		return errors.Wrap(err, "failed to back up database before migration")
	}

	log.Info("Start migration", zap.String("from", latestMigrationHistoryVersion), zap.String("to", currentVersion))
	minorVersionList, err := d.minorVersionList()
	if err != nil {
		return err
	}
	for _, minorVersion := range minorVersionList {
		normalizedVersion := minorVersion + ".0"
		if version.IsVersionGreaterThan(normalizedVersion, latestMigrationHistoryVersion) &&
			version.IsVersionGreaterOrEqualThan(currentVersion, normalizedVersion) {
			log.Info("Applying migration", zap.String("version", normalizedVersion))
			if err := d.applyMigrationForMinorVersion(ctx, minorVersion); err != nil {
				return errors.Wrapf(err, "failed to apply version %s migration", minorVersion)
			}
		}
	}
	log.Info("End migration", zap.String("version", currentVersion))

	if backupPath != "" {
		if err := os.Remove(backupPath); err != nil {
			log.Warn("Failed to remove database backup", zap.String("path", backupPath), zap.Error(err))
		}
	}
	return nil
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s/%s", d.driver, latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	if err := d.execute(ctx, string(buf)); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema %q", latestSchemaPath)
	}
	return nil
}

func (d *DB) applyMigrationForMinorVersion(ctx context.Context, minorVersion string) error {
	filenames, err := fs.Glob(migrationFS, fmt.Sprintf("migration/%s/%s/*.sql", d.driver, minorVersion))
	if err != nil {
		return errors.Wrapf(err, "failed to find migration files for version %s", minorVersion)
	}

	// Files are applied by name: 00001_example.sql, 00002_example.sql, ...
	slices.Sort(filenames)
	for _, filename := range filenames {
		buf, err := migrationFS.ReadFile(filename)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file: %q", filename)
		}
		if err := d.execute(ctx, string(buf)); err != nil {
			return errors.Wrapf(err, "failed to apply migration %q", filename)
		}
	}

	version := minorVersion + ".0"
	if _, err := d.UpsertMigrationHistory(ctx, version); err != nil {
		return errors.Wrapf(err, "failed to upsert migration history for version %s", version)
	}
	return nil
}

// execute runs the statements of stmt within a transaction.
func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}

	return tx.Commit()
}

// backup copies the sqlite database file next to itself. Memory databases and
// postgres are not backed up and "" is returned.
func (d *DB) backup() (string, error) {
	if d.path == "" {
		return "", nil
	}
	rawBytes, err := os.ReadFile(d.path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read raw database file")
	}
	backupPath := filepath.Join(filepath.Dir(d.path),
		fmt.Sprintf("biblioteca_%s_%d_backup.db", version.GetCurrentVersion(), time.Now().Unix()))
	if err := os.WriteFile(backupPath, rawBytes, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write backup database file")
	}
	log.Info("Backup database file", zap.String("path", backupPath))
	return backupPath, nil
}

// minorDirRegexp matches a minor version directory such as migration/sqlite/0.2.
var minorDirRegexp = regexp.MustCompile(`^migration/[a-z]+/[0-9]+\.[0-9]+$`)

func (d *DB) minorVersionList() ([]string, error) {
	minorVersionList := []string{}

	root := "migration/" + d.driver
	if err := fs.WalkDir(migrationFS, root, func(path string, file fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if file.IsDir() && minorDirRegexp.MatchString(path) {
			minorVersionList = append(minorVersionList, file.Name())
		}
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to list migration directories")
	}

	// Minor versions compare as major.minor.0.
	sort.Slice(minorVersionList, func(i, j int) bool {
		return version.IsVersionGreaterThan(minorVersionList[j]+".0", minorVersionList[i]+".0")
	})
	return minorVersionList, nil
}
