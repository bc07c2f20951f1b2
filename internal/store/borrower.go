package store

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/model"
)

const borrowerEntity = "borrower"

func (s *Store) borrowerQuery(find *model.FindBorrower) *goqu.SelectDataset {
	ds := s.dialect.From("borrowers").Select("id", "name", "email", "phone").Order(goqu.C("id").Asc())
	if v := find.ID; v != nil {
		ds = ds.Where(goqu.C("id").Eq(*v))
	}
	if v := find.Email; v != nil {
		ds = ds.Where(goqu.C("email").Eq(*v))
	}
	if v := find.Name; v != nil {
		ds = ds.Where(s.contains(goqu.C("name"), *v))
	}
	return ds
}

func (s *Store) ListBorrowers(ctx context.Context, find *model.FindBorrower) ([]*model.Borrower, error) {
	return selectList[model.Borrower](ctx, s.db, s.borrowerQuery(find))
}

func (s *Store) GetBorrower(ctx context.Context, id int64) (*model.Borrower, error) {
	return s.getBorrower(ctx, s.db, id)
}

func (s *Store) getBorrower(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Borrower, error) {
	return selectOne[model.Borrower](ctx, q, s.borrowerQuery(&model.FindBorrower{ID: &id}), describe(borrowerEntity, id))
}

func (s *Store) CreateBorrower(ctx context.Context, create *model.Borrower) (*model.Borrower, error) {
	var borrower model.Borrower
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		if err := s.checkUnique(ctx, tx, borrowerEntity, "borrowers", "email", create.Email, 0); err != nil {
			return err
		}

		stmt := `
			INSERT INTO borrowers (name, email, phone)
			VALUES (?, ?, ?)
			RETURNING id, name, email, phone
		`
		if err := insertReturning(ctx, tx, &borrower, stmt, create.Name, create.Email, create.Phone); err != nil {
			return err
		}
		return s.audit(ctx, tx, borrowerEntity, auditCreate, borrower.ID)
	})
	if err != nil {
		return nil, err
	}
	return &borrower, nil
}

func (s *Store) UpdateBorrower(ctx context.Context, id int64, mutate func(*model.Borrower) error) (*model.Borrower, error) {
	var borrower model.Borrower
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getBorrower(ctx, tx, id)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}
		if update.Email != current.Email {
			if err := s.checkUnique(ctx, tx, borrowerEntity, "borrowers", "email", update.Email, id); err != nil {
				return err
			}
		}

		stmt := `
			UPDATE borrowers
			SET name = ?, email = ?, phone = ?
			WHERE id = ?
			RETURNING id, name, email, phone
		`
		if err := insertReturning(ctx, tx, &borrower, stmt, update.Name, update.Email, update.Phone, id); err != nil {
			return err
		}
		return s.audit(ctx, tx, borrowerEntity, auditUpdate, id)
	})
	if err != nil {
		return nil, err
	}
	return &borrower, nil
}

// DeleteBorrower removes a borrower without loans or loan history.
func (s *Store) DeleteBorrower(ctx context.Context, id int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		if _, err := s.getBorrower(ctx, tx, id); err != nil {
			return err
		}
		if err := s.restrict(ctx, tx, borrowerEntity, id,
			dependent{"loans", "borrower_id"},
			dependent{"loan_history", "borrower_id"},
		); err != nil {
			return err
		}
		if err := deleteByID(ctx, tx, "borrowers", "id", id, describe(borrowerEntity, id)); err != nil {
			return err
		}
		return s.audit(ctx, tx, borrowerEntity, auditDelete, id)
	})
}
