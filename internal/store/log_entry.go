package store

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/model"
)

const logEntryEntity = "log"

func (s *Store) logEntryQuery(find *model.FindLogEntry) *goqu.SelectDataset {
	ds := s.dialect.From("logs").
		Select("id", "action", "description", "timestamp").
		Order(goqu.C("timestamp").Desc(), goqu.C("id").Desc())
	if v := find.ID; v != nil {
		ds = ds.Where(goqu.C("id").Eq(*v))
	}
	if v := find.Action; v != nil {
		ds = ds.Where(goqu.C("action").Eq(*v))
	}
	return ds
}

// ListLogEntries returns the audit log newest first.
func (s *Store) ListLogEntries(ctx context.Context, find *model.FindLogEntry) ([]*model.LogEntry, error) {
	return selectList[model.LogEntry](ctx, s.db, s.logEntryQuery(find))
}

func (s *Store) GetLogEntry(ctx context.Context, id int64) (*model.LogEntry, error) {
	return s.getLogEntry(ctx, s.db, id)
}

func (s *Store) getLogEntry(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.LogEntry, error) {
	return selectOne[model.LogEntry](ctx, q, s.logEntryQuery(&model.FindLogEntry{ID: &id}), describe(logEntryEntity, id))
}

// CreateLogEntry stores an entry stamped with the current time. The timestamp
// of create is ignored.
func (s *Store) CreateLogEntry(ctx context.Context, create *model.LogEntry) (*model.LogEntry, error) {
	var entry model.LogEntry
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		stmt := `
			INSERT INTO logs (action, description, timestamp)
			VALUES (?, ?, ?)
			RETURNING id, action, description, timestamp
		`
		return insertReturning(ctx, tx, &entry, stmt, create.Action, create.Description, time.Now().Unix())
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateLogEntry changes action and description, the timestamp is kept.
func (s *Store) UpdateLogEntry(ctx context.Context, id int64, mutate func(*model.LogEntry) error) (*model.LogEntry, error) {
	var entry model.LogEntry
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getLogEntry(ctx, tx, id)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}

		stmt := `
			UPDATE logs
			SET action = ?, description = ?
			WHERE id = ?
			RETURNING id, action, description, timestamp
		`
		return insertReturning(ctx, tx, &entry, stmt, update.Action, update.Description, id)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) DeleteLogEntry(ctx context.Context, id int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		return deleteByID(ctx, tx, "logs", "id", id, describe(logEntryEntity, id))
	})
}
