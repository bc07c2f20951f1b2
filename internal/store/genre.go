package store

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/Xunop/biblioteca/internal/model"
)

const genreEntity = "genre"

func (s *Store) genreQuery(find *model.FindGenre) *goqu.SelectDataset {
	ds := s.dialect.From("genres").Select("id", "name").Order(goqu.C("id").Asc())
	if v := find.ID; v != nil {
		ds = ds.Where(goqu.C("id").Eq(*v))
	}
	if v := find.Name; v != nil {
		ds = ds.Where(goqu.C("name").Eq(*v))
	}
	return ds
}

func (s *Store) ListGenres(ctx context.Context, find *model.FindGenre) ([]*model.Genre, error) {
	return selectList[model.Genre](ctx, s.db, s.genreQuery(find))
}

func (s *Store) GetGenre(ctx context.Context, id int64) (*model.Genre, error) {
	return s.getGenre(ctx, s.db, id)
}

func (s *Store) getGenre(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Genre, error) {
	return selectOne[model.Genre](ctx, q, s.genreQuery(&model.FindGenre{ID: &id}), describe(genreEntity, id))
}

func (s *Store) CreateGenre(ctx context.Context, create *model.Genre) (*model.Genre, error) {
	var genre model.Genre
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		if err := s.checkUnique(ctx, tx, genreEntity, "genres", "name", create.Name, 0); err != nil {
			return err
		}

		stmt := `
			INSERT INTO genres (name)
			VALUES (?)
			RETURNING id, name
		`
		if err := insertReturning(ctx, tx, &genre, stmt, create.Name); err != nil {
			return err
		}
		return s.audit(ctx, tx, genreEntity, auditCreate, genre.ID)
	})
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (s *Store) UpdateGenre(ctx context.Context, id int64, mutate func(*model.Genre) error) (*model.Genre, error) {
	var genre model.Genre
	err := s.withTx(ctx, opWrite, func(tx *sqlx.Tx) error {
		current, err := s.getGenre(ctx, tx, id)
		if err != nil {
			return err
		}
		update := *current
		if err := mutate(&update); err != nil {
			return err
		}
		if update.Name != current.Name {
			if err := s.checkUnique(ctx, tx, genreEntity, "genres", "name", update.Name, id); err != nil {
				return err
			}
		}

		stmt := `
			UPDATE genres
			SET name = ?
			WHERE id = ?
			RETURNING id, name
		`
		if err := insertReturning(ctx, tx, &genre, stmt, update.Name, id); err != nil {
			return err
		}
		return s.audit(ctx, tx, genreEntity, auditUpdate, id)
	})
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// DeleteGenre removes a genre no book belongs to.
func (s *Store) DeleteGenre(ctx context.Context, id int64) error {
	return s.withTx(ctx, opDelete, func(tx *sqlx.Tx) error {
		if _, err := s.getGenre(ctx, tx, id); err != nil {
			return err
		}
		if err := s.restrict(ctx, tx, genreEntity, id, dependent{"books", "genre_id"}); err != nil {
			return err
		}
		if err := deleteByID(ctx, tx, "genres", "id", id, describe(genreEntity, id)); err != nil {
			return err
		}
		return s.audit(ctx, tx, genreEntity, auditDelete, id)
	})
}
