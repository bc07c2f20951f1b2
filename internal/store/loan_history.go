package store

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/model"
)

const loanHistoryEntity = "loan_history"

func (s *Store) loanHistoryQuery(find *model.FindLoanHistory) *goqu.SelectDataset {
	ds := s.dialect.From("loan_history").
		Select("id", "book_id", "borrower_id", "action", "date").
		Order(goqu.C("date").Asc(), goqu.C("id").Asc())
	if v := find.ID; v != nil {
		ds = ds.Where(goqu.C("id").Eq(*v))
	}
	if v := find.BookID; v != nil {
		ds = ds.Where(goqu.C("book_id").Eq(*v))
	}
	if v := find.BorrowerID; v != nil {
		ds = ds.Where(goqu.C("borrower_id").Eq(*v))
	}
	if v := find.Action; v != nil {
		ds = ds.Where(goqu.C("action").Eq(v.String()))
	}
	return ds
}

func (s *Store) ListLoanHistory(ctx context.Context, find *model.FindLoanHistory) ([]*model.LoanHistory, error) {
	return selectList[model.LoanHistory](ctx, s.db, s.loanHistoryQuery(find))
}

func (s *Store) GetLoanHistory(ctx context.Context, id int64) (*model.LoanHistory, error) {
	return s.getLoanHistory(ctx, s.db, id)
}

func (s *Store) getLoanHistory(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.LoanHistory, error) {
	return selectOne[model.LoanHistory](ctx, q, s.loanHistoryQuery(&model.FindLoanHistory{ID: &id}), describe(loanHistoryEntity, id))
}

func (s *Store) CreateLoanHistory(ctx context.Context, create *model.LoanHistory) (*model.LoanHistory, error) {
	var record model.LoanHistory
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		if err := s.checkRef(ctx, tx, bookEntity, "books", "id", create.BookID); err != nil {
			return err
		}
		if err := s.checkRef(ctx, tx, borrowerEntity, "borrowers", "id", create.BorrowerID); err != nil {
			return err
		}

		stmt := `
			INSERT INTO loan_history (book_id, borrower_id, action, date)
			VALUES (?, ?, ?, ?)
			RETURNING id, book_id, borrower_id, action, date
		`
		if err := insertReturning(ctx, tx, &record, stmt,
			create.BookID, create.BorrowerID, create.Action.String(), create.Date); err != nil {
			return err
		}
		return s.audit(ctx, tx, loanHistoryEntity, auditCreate, record.ID)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) UpdateLoanHistory(ctx context.Context, id int64, mutate func(*model.LoanHistory) error) (*model.LoanHistory, error) {
	var record model.LoanHistory
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getLoanHistory(ctx, tx, id)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}
		if update.BookID != current.BookID {
			if err := s.checkRef(ctx, tx, bookEntity, "books", "id", update.BookID); err != nil {
				return err
			}
		}
		if update.BorrowerID != current.BorrowerID {
			if err := s.checkRef(ctx, tx, borrowerEntity, "borrowers", "id", update.BorrowerID); err != nil {
				return err
			}
		}

		stmt := `
			UPDATE loan_history
			SET book_id = ?, borrower_id = ?, action = ?, date = ?
			WHERE id = ?
			RETURNING id, book_id, borrower_id, action, date
		`
		if err := insertReturning(ctx, tx, &record, stmt,
			update.BookID, update.BorrowerID, update.Action.String(), update.Date, id); err != nil {
			return err
		}
		return s.audit(ctx, tx, loanHistoryEntity, auditUpdate, id)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) DeleteLoanHistory(ctx context.Context, id int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		if err := deleteByID(ctx, tx, "loan_history", "id", id, describe(loanHistoryEntity, id)); err != nil {
			return err
		}
		return s.audit(ctx, tx, loanHistoryEntity, auditDelete, id)
	})
}
