package store

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

const loanEntity = "loan"

func (s *Store) loanQuery(find *model.FindLoan) *goqu.SelectDataset {
	ds := s.dialect.From("loans").
		Select("id", "book_id", "borrower_id", "borrow_date", "return_date").
		Order(goqu.C("id").Asc())
	if v := find.ID; v != nil {
		ds = ds.Where(goqu.C("id").Eq(*v))
	}
	if v := find.BookID; v != nil {
		ds = ds.Where(goqu.C("book_id").Eq(*v))
	}
	if v := find.BorrowerID; v != nil {
		ds = ds.Where(goqu.C("borrower_id").Eq(*v))
	}
	if v := find.Open; v != nil {
		if *v {
			ds = ds.Where(goqu.C("return_date").IsNull())
		} else {
			ds = ds.Where(goqu.C("return_date").IsNotNull())
		}
	}
	return ds
}

func (s *Store) ListLoans(ctx context.Context, find *model.FindLoan) ([]*model.Loan, error) {
	return selectList[model.Loan](ctx, s.db, s.loanQuery(find))
}

func (s *Store) GetLoan(ctx context.Context, id int64) (*model.Loan, error) {
	return s.getLoan(ctx, s.db, id)
}

func (s *Store) getLoan(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Loan, error) {
	return selectOne[model.Loan](ctx, q, s.loanQuery(&model.FindLoan{ID: &id}), describe(loanEntity, id))
}

func (s *Store) CreateLoan(ctx context.Context, create *model.Loan) (*model.Loan, error) {
	if err := validator.ValidateLoan(create); err != nil {
		return nil, err
	}

	var loan model.Loan
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		if err := s.checkRef(ctx, tx, bookEntity, "books", "id", create.BookID); err != nil {
			return err
		}
		if err := s.checkRef(ctx, tx, borrowerEntity, "borrowers", "id", create.BorrowerID); err != nil {
			return err
		}

		stmt := `
			INSERT INTO loans (book_id, borrower_id, borrow_date, return_date)
			VALUES (?, ?, ?, ?)
			RETURNING id, book_id, borrower_id, borrow_date, return_date
		`
		if err := insertReturning(ctx, tx, &loan, stmt,
			create.BookID, create.BorrowerID, create.BorrowDate, create.ReturnDate); err != nil {
			return err
		}
		return s.audit(ctx, tx, loanEntity, auditCreate, loan.ID)
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// UpdateLoan applies mutate to the stored loan. The date ordering is checked
// on the merged record, so a patch of one date is compared with the stored one.
func (s *Store) UpdateLoan(ctx context.Context, id int64, mutate func(*model.Loan) error) (*model.Loan, error) {
	var loan model.Loan
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getLoan(ctx, tx, id)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}
		if err := validator.ValidateLoan(&update); err != nil {
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
			UPDATE loans
			SET book_id = ?, borrower_id = ?, borrow_date = ?, return_date = ?
			WHERE id = ?
			RETURNING id, book_id, borrower_id, borrow_date, return_date
		`
		if err := insertReturning(ctx, tx, &loan, stmt,
			update.BookID, update.BorrowerID, update.BorrowDate, update.ReturnDate, id); err != nil {
			return err
		}
		return s.audit(ctx, tx, loanEntity, auditUpdate, id)
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (s *Store) DeleteLoan(ctx context.Context, id int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		if err := deleteByID(ctx, tx, "loans", "id", id, describe(loanEntity, id)); err != nil {
			return err
		}
		return s.audit(ctx, tx, loanEntity, auditDelete, id)
	})
}
