package store

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Xunop/biblioteca/internal/validator"
)

var (
	// ErrNotFound is returned when the addressed entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrReferenceNotFound is returned when a foreign key names a missing entity.
	ErrReferenceNotFound = errors.New("referenced entity not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("already exists")
	// ErrConflict is returned when a delete is blocked by dependents or when
	// the database reports lock contention.
	ErrConflict = errors.New("conflict")
)

type operation int

const (
	opWrite operation = iota
	opDelete
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgLockNotAvailable    = "55P03"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
)

// classify maps driver errors onto the store error taxonomy by error code.
// Errors that are already classified pass through unchanged.
func classify(err error, op operation) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(ErrNotFound, err.Error())
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		switch code {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Wrap(ErrDuplicate, sqliteErr.Error())
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyError(sqliteErr.Error(), op)
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return errors.Wrap(validator.ErrInvalid, sqliteErr.Error())
		}
		switch code & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return errors.Wrap(ErrConflict, sqliteErr.Error())
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Wrap(ErrDuplicate, pgErr.Message)
		case pgForeignKeyViolation:
			return foreignKeyError(pgErr.Message, op)
		case pgCheckViolation:
			return errors.Wrap(validator.ErrInvalid, pgErr.Message)
		case pgLockNotAvailable, pgSerializationFail, pgDeadlockDetected:
			return errors.Wrap(ErrConflict, pgErr.Message)
		}
	}
	return err
}

func foreignKeyError(message string, op operation) error {
	if op == opDelete {
		return errors.Wrap(ErrConflict, message)
	}
	return errors.Wrap(ErrReferenceNotFound, message)
}

func isClassified(err error) bool {
	for _, target := range []error{ErrNotFound, ErrReferenceNotFound, ErrDuplicate, ErrConflict, validator.ErrInvalid, validator.ErrEmptyPatch} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
