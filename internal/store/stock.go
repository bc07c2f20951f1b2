package store

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Xunop/biblioteca/internal/model"
)

const stockEntity = "stock"

func (s *Store) stockQuery(find *model.FindStock) *goqu.SelectDataset {
	ds := s.dialect.From("stock").Select("book_id", "quantity").Order(goqu.C("book_id").Asc())
	if v := find.BookID; v != nil {
		ds = ds.Where(goqu.C("book_id").Eq(*v))
	}
	return ds
}

func (s *Store) ListStock(ctx context.Context, find *model.FindStock) ([]*model.Stock, error) {
	return selectList[model.Stock](ctx, s.db, s.stockQuery(find))
}

// GetStock returns the stock row of a book.
func (s *Store) GetStock(ctx context.Context, bookID int64) (*model.Stock, error) {
	return s.getStock(ctx, s.db, bookID)
}

func (s *Store) getStock(ctx context.Context, q sqlx.QueryerContext, bookID int64) (*model.Stock, error) {
	return selectOne[model.Stock](ctx, q, s.stockQuery(&model.FindStock{BookID: &bookID}), describe(stockEntity, bookID))
}

// CreateStock adds the stock row of a book, a book has at most one.
func (s *Store) CreateStock(ctx context.Context, create *model.Stock) (*model.Stock, error) {
	var stock model.Stock
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		if err := s.checkRef(ctx, tx, bookEntity, "books", "id", create.BookID); err != nil {
			return err
		}
		found, err := s.exists(ctx, tx, "stock", goqu.Ex{"book_id": create.BookID})
		if err != nil {
			return err
		}
		if found {
			return duplicateStock(create.BookID)
		}

		stmt := `
			INSERT INTO stock (book_id, quantity)
			VALUES (?, ?)
			RETURNING book_id, quantity
		`
		if err := insertReturning(ctx, tx, &stock, stmt, create.BookID, create.Quantity); err != nil {
			return err
		}
		return s.audit(ctx, tx, stockEntity, auditCreate, stock.BookID)
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// UpdateStock changes the quantity of a book, the book itself never changes.
func (s *Store) UpdateStock(ctx context.Context, bookID int64, mutate func(*model.Stock) error) (*model.Stock, error) {
	var stock model.Stock
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getStock(ctx, tx, bookID)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}

		stmt := `
			UPDATE stock
			SET quantity = ?
			WHERE book_id = ?
			RETURNING book_id, quantity
		`
		if err := insertReturning(ctx, tx, &stock, stmt, update.Quantity, bookID); err != nil {
			return err
		}
		return s.audit(ctx, tx, stockEntity, auditUpdate, bookID)
	})
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (s *Store) DeleteStock(ctx context.Context, bookID int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		if err := deleteByID(ctx, tx, "stock", "book_id", bookID, describe(stockEntity, bookID)); err != nil {
			return err
		}
		return s.audit(ctx, tx, stockEntity, auditDelete, bookID)
	})
}

func duplicateStock(bookID int64) error {
	return errors.Wrapf(ErrDuplicate, "stock for book %d", bookID)
}
