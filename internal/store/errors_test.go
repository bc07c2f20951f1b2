package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xunop/biblioteca/internal/config"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/store/db"
	"github.com/Xunop/biblioteca/internal/validator"
)

func TestClassifySQLiteErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.db.ExecContext(ctx, "INSERT INTO genres (name) VALUES ('Poetry')")
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, "INSERT INTO genres (name) VALUES ('Poetry')")
	require.Error(t, err)
	assert.ErrorIs(t, classify(err, opWrite), ErrDuplicate)

	_, err = s.db.ExecContext(ctx, "INSERT INTO books (title, author_id, publication_year, genre_id) VALUES ('x', 99, 1900, 99)")
	require.Error(t, err)
	assert.ErrorIs(t, classify(err, opWrite), ErrReferenceNotFound)
	assert.ErrorIs(t, classify(err, opDelete), ErrConflict)

	_, _, book := seed(t, s)
	borrower := seedBorrower(t, s, "ana@example.com")
	_, err = s.db.ExecContext(ctx, "INSERT INTO loan_history (book_id, borrower_id, action, date) VALUES (?, ?, 'lost', '2024-01-01')", book.ID, borrower.ID)
	require.Error(t, err)
	assert.ErrorIs(t, classify(err, opWrite), validator.ErrInvalid)
}

func TestSQLiteLockContentionIsConflict(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "biblioteca.db")

	// No busy timeout, a locked database fails the write right away.
	d, err := db.NewDB(config.DriverSQLite, path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(0)")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	require.NoError(t, d.Migrate(ctx))
	s := NewStore(d)

	other, err := sqlx.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { other.Close() })
	conn, err := other.Connx(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE")
	require.NoError(t, err)

	_, err = s.CreateAuthor(ctx, &model.Author{Name: "Machado de Assis", Country: "Brazil"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = conn.ExecContext(ctx, "ROLLBACK")
	require.NoError(t, err)

	author, err := s.CreateAuthor(ctx, &model.Author{Name: "Machado de Assis", Country: "Brazil"})
	require.NoError(t, err)
	authors, err := s.ListAuthors(ctx, &model.FindAuthor{})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, author.ID, authors[0].ID)
}

func TestClassifyPostgresErrors(t *testing.T) {
	tests := []struct {
		code string
		op   operation
		want error
	}{
		{pgUniqueViolation, opWrite, ErrDuplicate},
		{pgForeignKeyViolation, opWrite, ErrReferenceNotFound},
		{pgForeignKeyViolation, opDelete, ErrConflict},
		{pgCheckViolation, opWrite, validator.ErrInvalid},
		{pgLockNotAvailable, opWrite, ErrConflict},
		{pgSerializationFail, opWrite, ErrConflict},
		{pgDeadlockDetected, opDelete, ErrConflict},
	}
	for _, tt := range tests {
		err := errors.Wrap(&pgconn.PgError{Code: tt.code, Message: "boom"}, "exec")
		assert.ErrorIs(t, classify(err, tt.op), tt.want, tt.code)
	}

	other := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(other), classify(other, opWrite))
}

func TestClassifyPassThrough(t *testing.T) {
	assert.Nil(t, classify(nil, opWrite))
	assert.ErrorIs(t, classify(sql.ErrNoRows, opWrite), ErrNotFound)

	wrapped := errors.Wrap(ErrDuplicate, "genre")
	assert.Same(t, wrapped, classify(wrapped, opWrite))

	plain := errors.New("disk on fire")
	assert.Equal(t, plain, classify(plain, opWrite))
}

func TestErrorMessagesNameEntity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetAuthor(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "author 7: not found", err.Error())
}
