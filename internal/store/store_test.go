package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xunop/biblioteca/internal/config"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/store/db"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	d, err := db.NewDB(config.DriverSQLite, filepath.Join(t.TempDir(), "biblioteca.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.Migrate(context.Background()))
	return NewStore(d, opts...)
}

// seed creates an author, a genre and a book written by that author.
func seed(t *testing.T, s *Store) (*model.Author, *model.Genre, *model.Book) {
	t.Helper()
	ctx := context.Background()
	author, err := s.CreateAuthor(ctx, &model.Author{Name: "Machado de Assis", Country: "Brazil"})
	require.NoError(t, err)
	genre, err := s.CreateGenre(ctx, &model.Genre{Name: "Romance"})
	require.NoError(t, err)
	book, err := s.CreateBook(ctx, &model.Book{
		Title:           "Dom Casmurro",
		AuthorID:        author.ID,
		PublicationYear: 1899,
		GenreID:         genre.ID,
	})
	require.NoError(t, err)
	return author, genre, book
}

func seedBorrower(t *testing.T, s *Store, email string) *model.Borrower {
	t.Helper()
	borrower, err := s.CreateBorrower(context.Background(), &model.Borrower{Name: "Ana", Email: email})
	require.NoError(t, err)
	return borrower
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
