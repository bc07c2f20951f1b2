package store // import "github.com/Xunop/biblioteca/internal/store"

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	// Register the goqu dialects used to build select statements.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/config"
	"github.com/Xunop/biblioteca/internal/store/db"
)

// Store persists the library entities. Every mutation runs in its own
// transaction, reads outside a mutation use the connection pool directly.
type Store struct {
	db       *sqlx.DB
	driver   string
	dialect  goqu.DialectWrapper
	auditLog bool
}

type Option func(*Store)

// WithAuditLog turns the audit log rows written by mutations on or off.
func WithAuditLog(enabled bool) Option {
	return func(s *Store) {
		s.auditLog = enabled
	}
}

func NewStore(d *db.DB, opts ...Option) *Store {
	s := &Store{
		db:       d.DB,
		driver:   d.Driver(),
		dialect:  goqu.Dialect(goquDialect(d.Driver())),
		auditLog: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func goquDialect(driver string) string {
	if driver == config.DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
