package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xunop/biblioteca/internal/model"
)

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalid))
	var fields Errors
	require.True(t, errors.As(err, &fields))
	return fields
}

func strPtr(s string) *string { return &s }

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"machado@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"missing-at.example.com", false},
		{"@example.com", false},
		{"user@", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.email), tt.email)
	}
}

func TestAuthorCreateTrimsAndRequires(t *testing.T) {
	r := &model.AuthorCreateRequest{Name: "  Machado de Assis ", Country: "Brazil"}
	require.NoError(t, ValidateAuthorCreateRequest(r))
	assert.Equal(t, "Machado de Assis", r.Name)

	fields := fieldErrors(t, ValidateAuthorCreateRequest(&model.AuthorCreateRequest{Name: "   "}))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "country")
}

func TestTextTooLong(t *testing.T) {
	r := &model.GenreCreateRequest{Name: strings.Repeat("a", 256)}
	fields := fieldErrors(t, ValidateGenreCreateRequest(r))
	assert.Contains(t, fields["name"], "255")

	r.Name = strings.Repeat("é", 255)
	assert.NoError(t, ValidateGenreCreateRequest(r))
}

func TestBookPublicationYear(t *testing.T) {
	base := model.BookCreateRequest{Title: "Dom Casmurro", AuthorID: 1, GenreID: 1, PublicationYear: 1899}
	r := base
	assert.NoError(t, ValidateBookCreateRequest(&r))

	r.PublicationYear = time.Now().Year() + 1
	assert.Contains(t, fieldErrors(t, ValidateBookCreateRequest(&r)), "publication_year")

	r = base
	r.PublicationYear = 0
	assert.Contains(t, fieldErrors(t, ValidateBookCreateRequest(&r)), "publication_year")

	r = base
	r.AuthorID = 0
	r.GenreID = -3
	fields := fieldErrors(t, ValidateBookCreateRequest(&r))
	assert.Contains(t, fields, "author_id")
	assert.Contains(t, fields, "genre_id")
}

func TestBorrowerEmail(t *testing.T) {
	r := &model.BorrowerCreateRequest{Name: "Ana", Email: "not-an-email"}
	assert.Contains(t, fieldErrors(t, ValidateBorrowerCreateRequest(r)), "email")

	r.Email = " ana@example.com "
	r.Phone = strPtr(" 555-0100 ")
	require.NoError(t, ValidateBorrowerCreateRequest(r))
	assert.Equal(t, "ana@example.com", r.Email)
	assert.Equal(t, "555-0100", *r.Phone)

	r.Email = "Ana@Example.COM"
	require.NoError(t, ValidateBorrowerCreateRequest(r))
	assert.Equal(t, "ana@example.com", r.Email)

	patch := &model.BorrowerPatchRequest{Email: model.Some("Bia@Example.com")}
	require.NoError(t, ValidateBorrowerPatchRequest(patch))
	assert.Equal(t, "bia@example.com", patch.Email.Value)
}

func TestEmptyPatch(t *testing.T) {
	assert.ErrorIs(t, ValidateAuthorPatchRequest(&model.AuthorPatchRequest{}), ErrEmptyPatch)
	assert.ErrorIs(t, ValidateBookPatchRequest(&model.BookPatchRequest{}), ErrEmptyPatch)
	assert.ErrorIs(t, ValidateGenrePatchRequest(&model.GenrePatchRequest{}), ErrEmptyPatch)
	assert.ErrorIs(t, ValidateBorrowerPatchRequest(&model.BorrowerPatchRequest{}), ErrEmptyPatch)
	assert.ErrorIs(t, ValidateLoanPatchRequest(&model.LoanPatchRequest{}), ErrEmptyPatch)
	assert.ErrorIs(t, ValidateStockPatchRequest(&model.StockPatchRequest{}), ErrEmptyPatch)
	assert.ErrorIs(t, ValidateLoanHistoryPatchRequest(&model.LoanHistoryPatchRequest{}), ErrEmptyPatch)
	assert.ErrorIs(t, ValidateLogEntryPatchRequest(&model.LogEntryPatchRequest{}), ErrEmptyPatch)
}

func TestPatchNullOnRequiredField(t *testing.T) {
	fields := fieldErrors(t, ValidateAuthorPatchRequest(&model.AuthorPatchRequest{Name: model.Null[string]()}))
	assert.Equal(t, "must not be null", fields["name"])

	fields = fieldErrors(t, ValidateStockPatchRequest(&model.StockPatchRequest{Quantity: model.Null[int]()}))
	assert.Equal(t, "must not be null", fields["quantity"])

	// phone is nullable
	assert.NoError(t, ValidateBorrowerPatchRequest(&model.BorrowerPatchRequest{Phone: model.Null[string]()}))
}

func TestPatchTrimsInPlace(t *testing.T) {
	r := &model.BookPatchRequest{Title: model.Some("  Quincas Borba ")}
	require.NoError(t, ValidateBookPatchRequest(r))
	assert.Equal(t, "Quincas Borba", r.Title.Value)

	r = &model.BookPatchRequest{Title: model.Some("   ")}
	assert.Contains(t, fieldErrors(t, ValidateBookPatchRequest(r)), "title")
}

func TestLoanDates(t *testing.T) {
	borrow := model.NewDate(2024, time.March, 10)
	before := model.NewDate(2024, time.March, 9)
	same := model.NewDate(2024, time.March, 10)

	r := &model.LoanCreateRequest{BookID: 1, BorrowerID: 1, BorrowDate: &borrow, ReturnDate: &before}
	assert.Contains(t, fieldErrors(t, ValidateLoanCreateRequest(r)), "return_date")

	r.ReturnDate = &same
	assert.NoError(t, ValidateLoanCreateRequest(r))

	r.BorrowDate = nil
	assert.Contains(t, fieldErrors(t, ValidateLoanCreateRequest(r)), "borrow_date")

	loan := &model.Loan{BookID: 1, BorrowerID: 1, BorrowDate: borrow, ReturnDate: &before}
	assert.Contains(t, fieldErrors(t, ValidateLoan(loan)), "return_date")
	loan.ReturnDate = nil
	assert.NoError(t, ValidateLoan(loan))
}

func TestStockQuantity(t *testing.T) {
	assert.Contains(t, fieldErrors(t, ValidateStockCreateRequest(&model.StockCreateRequest{BookID: 1})), "quantity")

	negative := -1
	assert.Contains(t, fieldErrors(t, ValidateStockUpdateRequest(&model.StockUpdateRequest{Quantity: &negative})), "quantity")

	zero := 0
	assert.NoError(t, ValidateStockCreateRequest(&model.StockCreateRequest{BookID: 1, Quantity: &zero}))
}

func TestLoanHistoryAction(t *testing.T) {
	date := model.NewDate(2024, time.May, 1)
	r := &model.LoanHistoryCreateRequest{BookID: 1, BorrowerID: 2, Action: "lost", Date: &date}
	assert.Contains(t, fieldErrors(t, ValidateLoanHistoryCreateRequest(r)), "action")

	r.Action = model.LoanActionReturned
	assert.NoError(t, ValidateLoanHistoryCreateRequest(r))
}

func TestErrorsMessage(t *testing.T) {
	err := Errors{"name": "must be provided", "country": "must be provided"}
	assert.Equal(t, "invalid input: country must be provided; name must be provided", err.Error())
}
