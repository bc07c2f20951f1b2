package store

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/model"
)

const bookEntity = "book"

func (s *Store) bookQuery(find *model.FindBook) *goqu.SelectDataset {
	ds := s.dialect.From("books").Select(
		goqu.I("books.id"),
		goqu.I("books.title"),
		goqu.I("books.author_id"),
		goqu.I("books.publication_year"),
		goqu.I("books.genre_id"),
		goqu.I("books.image"),
	).Order(goqu.I("books.id").Asc())

	if v := find.ID; v != nil {
		ds = ds.Where(goqu.I("books.id").Eq(*v))
	}
	if v := find.Title; v != nil {
		ds = ds.Where(goqu.I("books.title").Eq(*v))
	}
	if v := find.AuthorID; v != nil {
		ds = ds.Where(goqu.I("books.author_id").Eq(*v))
	}
	if v := find.GenreID; v != nil {
		ds = ds.Where(goqu.I("books.genre_id").Eq(*v))
	}
	if v := find.AuthorName; v != nil {
		ds = ds.
			InnerJoin(goqu.T("authors"), goqu.On(goqu.I("authors.id").Eq(goqu.I("books.author_id")))).
			Where(s.contains(goqu.I("authors.name"), *v))
	}
	return ds
}

func (s *Store) ListBooks(ctx context.Context, find *model.FindBook) ([]*model.Book, error) {
	return selectList[model.Book](ctx, s.db, s.bookQuery(find))
}

func (s *Store) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	return s.getBook(ctx, s.db, id)
}

func (s *Store) getBook(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Book, error) {
	return selectOne[model.Book](ctx, q, s.bookQuery(&model.FindBook{ID: &id}), describe(bookEntity, id))
}

func (s *Store) CreateBook(ctx context.Context, create *model.Book) (*model.Book, error) {
	var book model.Book
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		if err := s.checkRef(ctx, tx, authorEntity, "authors", "id", create.AuthorID); err != nil {
			return err
		}
		if err := s.checkRef(ctx, tx, genreEntity, "genres", "id", create.GenreID); err != nil {
			return err
		}

		stmt := `
			INSERT INTO books (title, author_id, publication_year, genre_id, image)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id, title, author_id, publication_year, genre_id, image
		`
		if err := insertReturning(ctx, tx, &book, stmt,
			create.Title, create.AuthorID, create.PublicationYear, create.GenreID, create.Image); err != nil {
			return err
		}
		return s.audit(ctx, tx, bookEntity, auditCreate, book.ID)
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *Store) UpdateBook(ctx context.Context, id int64, mutate func(*model.Book) error) (*model.Book, error) {
	var book model.Book
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getBook(ctx, tx, id)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}
		if update.AuthorID != current.AuthorID {
			if err := s.checkRef(ctx, tx, authorEntity, "authors", "id", update.AuthorID); err != nil {
				return err
			}
		}
		if update.GenreID != current.GenreID {
			if err := s.checkRef(ctx, tx, genreEntity, "genres", "id", update.GenreID); err != nil {
				return err
			}
		}

		stmt := `
			UPDATE books
			SET title = ?, author_id = ?, publication_year = ?, genre_id = ?, image = ?
			WHERE id = ?
			RETURNING id, title, author_id, publication_year, genre_id, image
		`
		if err := insertReturning(ctx, tx, &book, stmt,
			update.Title, update.AuthorID, update.PublicationYear, update.GenreID, update.Image, id); err != nil {
			return err
		}
		return s.audit(ctx, tx, bookEntity, auditUpdate, id)
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book that has no stock row, loans or loan history.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		if _, err := s.getBook(ctx, tx, id); err != nil {
			return err
		}
		if err := s.restrict(ctx, tx, bookEntity, id,
			dependent{"stock", "book_id"},
			dependent{"loans", "book_id"},
			dependent{"loan_history", "book_id"},
		); err != nil {
			return err
		}
		if err := deleteByID(ctx, tx, "books", "id", id, describe(bookEntity, id)); err != nil {
			return err
		}
		return s.audit(ctx, tx, bookEntity, auditDelete, id)
	})
}
