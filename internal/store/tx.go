package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Xunop/biblioteca/internal/log"
)

// withTx runs fn in a transaction. The transaction is committed only when fn
// returns nil, any error rolls back everything fn wrote.
func (s *Store) withTx(ctx context.Context, op operation, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(errors.Wrap(err, "failed to begin transaction"), op)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return classify(err, op)
	}
	if err := tx.Commit(); err != nil {
		return classify(errors.Wrap(err, "failed to commit transaction"), op)
	}
	return nil
}

// selectList runs a goqu select and scans every row into a T.
func selectList[T any](ctx context.Context, q sqlx.QueryerContext, ds *goqu.SelectDataset) ([]*T, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}
	log.Debug("SQL query", zap.String("query", query), zap.Any("args", args))

	list := make([]*T, 0)
	if err := sqlx.SelectContext(ctx, q, &list, query, args...); err != nil {
		return nil, err
	}
	return list, nil
}

// selectOne is selectList for a single row, a missing row is ErrNotFound
// wrapped with what.
func selectOne[T any](ctx context.Context, q sqlx.QueryerContext, ds *goqu.SelectDataset, what string) (*T, error) {
	list, err := selectList[T](ctx, q, ds.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.Wrap(ErrNotFound, what)
	}
	return list[0], nil
}

// insertReturning runs a raw write ending in RETURNING and scans the row into dest.
func insertReturning(ctx context.Context, tx *sqlx.Tx, dest any, stmt string, args ...any) error {
	stmt = tx.Rebind(stmt)
	log.Debug("SQL statement", zap.String("stmt", stmt), zap.Any("args", args))
	if err := tx.QueryRowxContext(ctx, stmt, args...).StructScan(dest); err != nil {
		return err
	}
	return nil
}

func (s *Store) exists(ctx context.Context, q sqlx.QueryerContext, table string, where goqu.Ex) (bool, error) {
	query, args, err := s.dialect.From(table).Select(goqu.L("1")).Where(where).Limit(1).Prepared(true).ToSQL()
	if err != nil {
		return false, errors.Wrap(err, "failed to build query")
	}
	var one int
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// checkRef fails with ErrReferenceNotFound when table has no row with id.
func (s *Store) checkRef(ctx context.Context, tx *sqlx.Tx, entity, table, column string, id int64) error {
	found, err := s.exists(ctx, tx, table, goqu.Ex{column: id})
	if err != nil {
		return errors.Wrapf(err, "failed to check %s %d", entity, id)
	}
	if !found {
		return errors.Wrapf(ErrReferenceNotFound, "%s %d", entity, id)
	}
	return nil
}

// checkUnique fails with ErrDuplicate when another row of table already holds
// value in column. The row with id excludeID is ignored, 0 ignores nothing.
func (s *Store) checkUnique(ctx context.Context, tx *sqlx.Tx, entity, table, column string, value any, excludeID int64) error {
	where := goqu.Ex{column: value}
	if excludeID > 0 {
		where["id"] = goqu.Op{"neq": excludeID}
	}
	found, err := s.exists(ctx, tx, table, where)
	if err != nil {
		return errors.Wrapf(err, "failed to check %s %s", entity, column)
	}
	if found {
		return errors.Wrapf(ErrDuplicate, "%s with %s %v", entity, column, value)
	}
	return nil
}

// dependent is a table whose column references the row being deleted.
type dependent struct {
	table  string
	column string
}

// restrict fails with ErrConflict when any dependent still references id.
func (s *Store) restrict(ctx context.Context, tx *sqlx.Tx, entity string, id int64, dependents ...dependent) error {
	for _, d := range dependents {
		found, err := s.exists(ctx, tx, d.table, goqu.Ex{d.column: id})
		if err != nil {
			return errors.Wrapf(err, "failed to check %s of %s %d", d.table, entity, id)
		}
		if found {
			return errors.Wrapf(ErrConflict, "%s %d is still referenced by %s", entity, id, d.table)
		}
	}
	return nil
}

// deleteByID removes the row of table keyed by column, a missing row is ErrNotFound.
func deleteByID(ctx context.Context, tx *sqlx.Tx, table, column string, id int64, what string) error {
	stmt := tx.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, column))
	log.Debug("SQL statement", zap.String("stmt", stmt), zap.Int64("id", id))
	result, err := tx.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Wrap(ErrNotFound, what)
	}
	return nil
}

const (
	auditCreate = "create"
	auditUpdate = "update"
	auditDelete = "delete"
)

// audit appends a logs row in tx, so the entry commits with the mutation.
func (s *Store) audit(ctx context.Context, tx *sqlx.Tx, entity, verb string, id int64) error {
	if !s.auditLog {
		return nil
	}
	description := describe(entity, id)
	stmt := tx.Rebind("INSERT INTO logs (action, description, timestamp) VALUES (?, ?, ?)")
	if _, err := tx.ExecContext(ctx, stmt, entity+"."+verb, description, time.Now().Unix()); err != nil {
		return errors.Wrap(err, "failed to write audit log")
	}
	return nil
}

func describe(entity string, id int64) string {
	return fmt.Sprintf("%s %d", entity, id)
}
