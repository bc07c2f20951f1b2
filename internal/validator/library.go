package validator

import (
	"strings"
	"time"

	"github.com/Xunop/biblioteca/internal/model"
)

const (
	maxImageLength = 2048
	maxPhoneLength = 32
)

func ValidateAuthorCreateRequest(r *model.AuthorCreateRequest) error {
	v := New()
	v.requiredText(&r.Name, "name")
	v.requiredText(&r.Country, "country")
	return v.Err()
}

func ValidateAuthorUpdateRequest(r *model.AuthorUpdateRequest) error {
	v := New()
	v.requiredText(&r.Name, "name")
	v.requiredText(&r.Country, "country")
	return v.Err()
}

func ValidateAuthorPatchRequest(r *model.AuthorPatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	v.patchText(&r.Name, "name", false, maxTextLength)
	v.patchText(&r.Country, "country", false, maxTextLength)
	return v.Err()
}

func ValidateBookCreateRequest(r *model.BookCreateRequest) error {
	v := New()
	v.book(&r.Title, r.AuthorID, r.PublicationYear, r.GenreID, r.Image)
	return v.Err()
}

func ValidateBookUpdateRequest(r *model.BookUpdateRequest) error {
	v := New()
	v.book(&r.Title, r.AuthorID, r.PublicationYear, r.GenreID, r.Image)
	return v.Err()
}

func ValidateBookPatchRequest(r *model.BookPatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	v.patchText(&r.Title, "title", false, maxTextLength)
	v.patchID(&r.AuthorID, "author_id")
	v.patchID(&r.GenreID, "genre_id")
	if v.patchNotNull(r.PublicationYear.Set, r.PublicationYear.Null, "publication_year") {
		v.publicationYear(r.PublicationYear.Value)
	}
	v.patchText(&r.Image, "image", true, maxImageLength)
	return v.Err()
}

func (v *Validator) book(title *string, authorID int64, year int, genreID int64, image *string) {
	v.requiredText(title, "title")
	v.id(authorID, "author_id")
	v.id(genreID, "genre_id")
	v.publicationYear(year)
	v.optionalText(image, "image", maxImageLength)
}

func (v *Validator) publicationYear(year int) {
	v.Check(year > 0, "publication_year", "must be provided")
	v.Check(year <= time.Now().Year(), "publication_year", "must not be in the future")
}

func ValidateGenreCreateRequest(r *model.GenreCreateRequest) error {
	v := New()
	v.requiredText(&r.Name, "name")
	return v.Err()
}

func ValidateGenreUpdateRequest(r *model.GenreUpdateRequest) error {
	v := New()
	v.requiredText(&r.Name, "name")
	return v.Err()
}

func ValidateGenrePatchRequest(r *model.GenrePatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	v.patchText(&r.Name, "name", false, maxTextLength)
	return v.Err()
}

func ValidateBorrowerCreateRequest(r *model.BorrowerCreateRequest) error {
	v := New()
	v.borrower(&r.Name, &r.Email, r.Phone)
	return v.Err()
}

func ValidateBorrowerUpdateRequest(r *model.BorrowerUpdateRequest) error {
	v := New()
	v.borrower(&r.Name, &r.Email, r.Phone)
	return v.Err()
}

func ValidateBorrowerPatchRequest(r *model.BorrowerPatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	v.patchText(&r.Name, "name", false, maxTextLength)
	v.patchText(&r.Email, "email", false, maxTextLength)
	if r.Email.Set && !r.Email.Null {
		r.Email.Value = strings.ToLower(r.Email.Value)
		v.Check(ValidEmail(r.Email.Value), "email", "must be a valid email address")
	}
	v.patchText(&r.Phone, "phone", true, maxPhoneLength)
	return v.Err()
}

func (v *Validator) borrower(name, email *string, phone *string) {
	v.requiredText(name, "name")
	v.requiredText(email, "email")
	// Addresses are unique regardless of case, they are stored lower cased.
	*email = strings.ToLower(*email)
	v.Check(ValidEmail(*email), "email", "must be a valid email address")
	v.optionalText(phone, "phone", maxPhoneLength)
}

func ValidateLoanCreateRequest(r *model.LoanCreateRequest) error {
	v := New()
	v.loan(r.BookID, r.BorrowerID, r.BorrowDate, r.ReturnDate)
	return v.Err()
}

func ValidateLoanUpdateRequest(r *model.LoanUpdateRequest) error {
	v := New()
	v.loan(r.BookID, r.BorrowerID, r.BorrowDate, r.ReturnDate)
	return v.Err()
}

func ValidateLoanPatchRequest(r *model.LoanPatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	v.patchID(&r.BookID, "book_id")
	v.patchID(&r.BorrowerID, "borrower_id")
	v.patchNotNull(r.BorrowDate.Set, r.BorrowDate.Null, "borrow_date")
	if r.BorrowDate.Set && !r.BorrowDate.Null && r.ReturnDate.Set && !r.ReturnDate.Null {
		v.Check(!r.ReturnDate.Value.Before(r.BorrowDate.Value), "return_date", "must not be earlier than borrow_date")
	}
	return v.Err()
}

// ValidateLoan checks the cross-field rules of a complete loan, used after a
// patch has been merged into the stored record.
func ValidateLoan(l *model.Loan) error {
	v := New()
	v.Check(!l.ReturnsBeforeBorrow(), "return_date", "must not be earlier than borrow_date")
	return v.Err()
}

func (v *Validator) loan(bookID, borrowerID int64, borrowDate, returnDate *model.Date) {
	v.id(bookID, "book_id")
	v.id(borrowerID, "borrower_id")
	v.Check(borrowDate != nil, "borrow_date", "must be provided")
	if borrowDate != nil && returnDate != nil {
		v.Check(!returnDate.Before(*borrowDate), "return_date", "must not be earlier than borrow_date")
	}
}

func ValidateStockCreateRequest(r *model.StockCreateRequest) error {
	v := New()
	v.id(r.BookID, "book_id")
	v.quantity(r.Quantity)
	return v.Err()
}

func ValidateStockUpdateRequest(r *model.StockUpdateRequest) error {
	v := New()
	v.quantity(r.Quantity)
	return v.Err()
}

func ValidateStockPatchRequest(r *model.StockPatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	if v.patchNotNull(r.Quantity.Set, r.Quantity.Null, "quantity") {
		v.quantity(&r.Quantity.Value)
	}
	return v.Err()
}

func (v *Validator) quantity(q *int) {
	v.Check(q != nil, "quantity", "must be provided")
	if q != nil {
		v.Check(*q >= 0, "quantity", "must not be negative")
	}
}

func ValidateLoanHistoryCreateRequest(r *model.LoanHistoryCreateRequest) error {
	v := New()
	v.loanHistory(r.BookID, r.BorrowerID, r.Action, r.Date)
	return v.Err()
}

func ValidateLoanHistoryUpdateRequest(r *model.LoanHistoryUpdateRequest) error {
	v := New()
	v.loanHistory(r.BookID, r.BorrowerID, r.Action, r.Date)
	return v.Err()
}

func ValidateLoanHistoryPatchRequest(r *model.LoanHistoryPatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	v.patchID(&r.BookID, "book_id")
	v.patchID(&r.BorrowerID, "borrower_id")
	if v.patchNotNull(r.Action.Set, r.Action.Null, "action") {
		v.Check(r.Action.Value.Valid(), "action", "must be borrowed or returned")
	}
	v.patchNotNull(r.Date.Set, r.Date.Null, "date")
	return v.Err()
}

func (v *Validator) loanHistory(bookID, borrowerID int64, action model.LoanAction, date *model.Date) {
	v.id(bookID, "book_id")
	v.id(borrowerID, "borrower_id")
	v.Check(action.Valid(), "action", "must be borrowed or returned")
	v.Check(date != nil, "date", "must be provided")
}

func ValidateLogEntryCreateRequest(r *model.LogEntryCreateRequest) error {
	v := New()
	v.requiredText(&r.Action, "action")
	v.optionalText(r.Description, "description", maxImageLength)
	return v.Err()
}

func ValidateLogEntryUpdateRequest(r *model.LogEntryUpdateRequest) error {
	v := New()
	v.requiredText(&r.Action, "action")
	v.optionalText(r.Description, "description", maxImageLength)
	return v.Err()
}

func ValidateLogEntryPatchRequest(r *model.LogEntryPatchRequest) error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	v := New()
	v.patchText(&r.Action, "action", false, maxTextLength)
	v.patchText(&r.Description, "description", true, maxImageLength)
	return v.Err()
}
