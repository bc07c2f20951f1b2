package model

import "github.com/pkg/errors"

// LoanAction is what happened to a book in a loan history record.
type LoanAction string

const (
	LoanActionBorrowed LoanAction = "borrowed"
	LoanActionReturned LoanAction = "returned"
)

func (a LoanAction) Valid() bool {
	return a == LoanActionBorrowed || a == LoanActionReturned
}

func (a LoanAction) String() string {
	return string(a)
}

// ParseLoanActionFilter parses the action query parameter of the loan history
// listings. "all" and "" select every action and return nil.
func ParseLoanActionFilter(s string) (*LoanAction, error) {
	switch s {
	case "", "all":
		return nil, nil
	case string(LoanActionBorrowed), string(LoanActionReturned):
		action := LoanAction(s)
		return &action, nil
	default:
		return nil, errors.Errorf("action must be one of all, borrowed, returned, got %q", s)
	}
}

type LoanHistory struct {
	ID         int64      `json:"id" db:"id"`
	BookID     int64      `json:"book_id" db:"book_id"`
	BorrowerID int64      `json:"borrower_id" db:"borrower_id"`
	Action     LoanAction `json:"action" db:"action"`
	Date       Date       `json:"date" db:"date"`
}

type FindLoanHistory struct {
	ID         *int64
	BookID     *int64
	BorrowerID *int64
	Action     *LoanAction
}

type LoanHistoryCreateRequest struct {
	BookID     int64      `json:"book_id"`
	BorrowerID int64      `json:"borrower_id"`
	Action     LoanAction `json:"action"`
	Date       *Date      `json:"date"`
}

func (r *LoanHistoryCreateRequest) LoanHistory() *LoanHistory {
	record := &LoanHistory{BookID: r.BookID, BorrowerID: r.BorrowerID, Action: r.Action}
	if r.Date != nil {
		record.Date = *r.Date
	}
	return record
}

type LoanHistoryUpdateRequest struct {
	BookID     int64      `json:"book_id"`
	BorrowerID int64      `json:"borrower_id"`
	Action     LoanAction `json:"action"`
	Date       *Date      `json:"date"`
}

func (r *LoanHistoryUpdateRequest) Apply(h *LoanHistory) {
	h.BookID = r.BookID
	h.BorrowerID = r.BorrowerID
	h.Action = r.Action
	if r.Date != nil {
		h.Date = *r.Date
	}
}

type LoanHistoryPatchRequest struct {
	BookID     Optional[int64]      `json:"book_id"`
	BorrowerID Optional[int64]      `json:"borrower_id"`
	Action     Optional[LoanAction] `json:"action"`
	Date       Optional[Date]       `json:"date"`
}

func (r *LoanHistoryPatchRequest) IsEmpty() bool {
	return !r.BookID.Set && !r.BorrowerID.Set && !r.Action.Set && !r.Date.Set
}

func (r *LoanHistoryPatchRequest) Apply(h *LoanHistory) {
	if r.BookID.Set {
		h.BookID = r.BookID.Value
	}
	if r.BorrowerID.Set {
		h.BorrowerID = r.BorrowerID.Value
	}
	if r.Action.Set {
		h.Action = r.Action.Value
	}
	if r.Date.Set {
		h.Date = r.Date.Value
	}
}
