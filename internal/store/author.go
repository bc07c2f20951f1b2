package store

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/config"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/store/db"
)

const authorEntity = "author"

func (s *Store) authorQuery(find *model.FindAuthor) *goqu.SelectDataset {
	ds := s.dialect.From("authors").Select("id", "name", "country").Order(goqu.C("id").Asc())
	if v := find.ID; v != nil {
		ds = ds.Where(goqu.C("id").Eq(*v))
	}
	if v := find.Name; v != nil {
		ds = ds.Where(s.contains(goqu.C("name"), *v))
	}
	return ds
}

func (s *Store) ListAuthors(ctx context.Context, find *model.FindAuthor) ([]*model.Author, error) {
	return selectList[model.Author](ctx, s.db, s.authorQuery(find))
}

func (s *Store) GetAuthor(ctx context.Context, id int64) (*model.Author, error) {
	return s.getAuthor(ctx, s.db, id)
}

func (s *Store) getAuthor(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Author, error) {
	return selectOne[model.Author](ctx, q, s.authorQuery(&model.FindAuthor{ID: &id}), describe(authorEntity, id))
}

func (s *Store) CreateAuthor(ctx context.Context, create *model.Author) (*model.Author, error) {
	var author model.Author
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		stmt := `
			INSERT INTO authors (name, country)
			VALUES (?, ?)
			RETURNING id, name, country
		`
		if err := insertReturning(ctx, tx, &author, stmt, create.Name, create.Country); err != nil {
			return err
		}
		return s.audit(ctx, tx, authorEntity, auditCreate, author.ID)
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// UpdateAuthor loads the author, lets mutate change it and writes it back in
// one transaction. An error from mutate aborts the update.
func (s *Store) UpdateAuthor(ctx context.Context, id int64, mutate func(*model.Author) error) (*model.Author, error) {
	var author model.Author
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getAuthor(ctx, tx, id)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}

		stmt := `
			UPDATE authors
			SET name = ?, country = ?
			WHERE id = ?
			RETURNING id, name, country
		`
		if err := insertReturning(ctx, tx, &author, stmt, update.Name, update.Country, id); err != nil {
			return err
		}
		return s.audit(ctx, tx, authorEntity, auditUpdate, id)
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// DeleteAuthor removes an author without books.
func (s *Store) DeleteAuthor(ctx context.Context, id int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		if _, err := s.getAuthor(ctx, tx, id); err != nil {
			return err
		}
		if err := s.restrict(ctx, tx, authorEntity, id, dependent{"books", "author_id"}); err != nil {
			return err
		}
		if err := deleteByID(ctx, tx, "authors", "id", id, describe(authorEntity, id)); err != nil {
			return err
		}
		return s.audit(ctx, tx, authorEntity, auditDelete, id)
	})
}

// likeEscaper escapes the LIKE wildcards of a search term, \ is the escape
// character of every pattern built by contains.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains matches rows whose col holds term anywhere, ignoring case. Both
// sides are folded by the database so the same rules apply to each.
func (s *Store) contains(col exp.Expression, term string) exp.Expression {
	fold := "LOWER"
	if s.driver == config.DriverSQLite {
		fold = db.SQLiteFoldFunc
	}
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return goqu.L(`? LIKE ? ESCAPE '\'`, goqu.Func(fold, col), goqu.Func(fold, pattern))
}
