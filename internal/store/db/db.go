package db

import (
	"context"
	"database/sql/driver"
	"strings"

	// Register the pgx database/sql driver as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"modernc.org/sqlite"

	"github.com/Xunop/biblioteca/internal/config"
)

// sqlitePragmas are appended to every sqlite DSN. Foreign keys are off by
// default in sqlite and the busy timeout keeps short write bursts from
// failing right away.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// SQLiteFoldFunc lower cases its argument with full unicode rules, the builtin
// LOWER of sqlite only folds ASCII letters.
const SQLiteFoldFunc = "unicode_lower"

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	sqlite.MustRegisterDeterministicScalarFunction(SQLiteFoldFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

type DB struct {
	*sqlx.DB
	driver string
	path   string
}

// NewDB opens the database for driver, it does not touch the schema.
func NewDB(driver, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is required")
	}

	switch driver {
	case config.DriverSQLite:
		d, err := sqlx.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, errors.Wrap(err, "failed to open sqlite database")
		}
		// One connection serializes writers, sqlite allows a single one anyway.
		d.SetMaxOpenConns(1)
		return &DB{DB: d, driver: driver, path: sqlitePath(dsn)}, nil
	case config.DriverPostgres:
		d, err := sqlx.Open("pgx", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open postgres database")
		}
		return &DB{DB: d, driver: driver}, nil
	default:
		return nil, errors.Errorf("unsupported driver %q", driver)
	}
}

// Driver returns the config driver name, not the database/sql one.
func (d *DB) Driver() string {
	return d.driver
}

func (d *DB) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.DB.Close()
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// sqlitePath returns the database file behind dsn, or "" for memory databases.
func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	return path
}
