package model

type Loan struct {
	ID         int64 `json:"id" db:"id"`
	BookID     int64 `json:"book_id" db:"book_id"`
	BorrowerID int64 `json:"borrower_id" db:"borrower_id"`
	BorrowDate Date  `json:"borrow_date" db:"borrow_date"`
	ReturnDate *Date `json:"return_date" db:"return_date"`
}

// ReturnsBeforeBorrow reports a return date earlier than the borrow date.
func (l *Loan) ReturnsBeforeBorrow() bool {
	return l.ReturnDate != nil && l.ReturnDate.Before(l.BorrowDate)
}

type FindLoan struct {
	ID         *int64
	BookID     *int64
	BorrowerID *int64
	// Open keeps only loans without a return date when true, and only
	// returned loans when false.
	Open *bool
}

type LoanCreateRequest struct {
	BookID     int64 `json:"book_id"`
	BorrowerID int64 `json:"borrower_id"`
	BorrowDate *Date `json:"borrow_date"`
	ReturnDate *Date `json:"return_date"`
}

func (r *LoanCreateRequest) Loan() *Loan {
	loan := &Loan{BookID: r.BookID, BorrowerID: r.BorrowerID, ReturnDate: r.ReturnDate}
	if r.BorrowDate != nil {
		loan.BorrowDate = *r.BorrowDate
	}
	return loan
}

type LoanUpdateRequest struct {
	BookID     int64 `json:"book_id"`
	BorrowerID int64 `json:"borrower_id"`
	BorrowDate *Date `json:"borrow_date"`
	ReturnDate *Date `json:"return_date"`
}

func (r *LoanUpdateRequest) Apply(l *Loan) {
	l.BookID = r.BookID
	l.BorrowerID = r.BorrowerID
	if r.BorrowDate != nil {
		l.BorrowDate = *r.BorrowDate
	}
	l.ReturnDate = r.ReturnDate
}

type LoanPatchRequest struct {
	BookID     Optional[int64] `json:"book_id"`
	BorrowerID Optional[int64] `json:"borrower_id"`
	BorrowDate Optional[Date]  `json:"borrow_date"`
	ReturnDate Optional[Date]  `json:"return_date"`
}

func (r *LoanPatchRequest) IsEmpty() bool {
	return !r.BookID.Set && !r.BorrowerID.Set && !r.BorrowDate.Set && !r.ReturnDate.Set
}

func (r *LoanPatchRequest) Apply(l *Loan) {
	if r.BookID.Set {
		l.BookID = r.BookID.Value
	}
	if r.BorrowerID.Set {
		l.BorrowerID = r.BorrowerID.Value
	}
	if r.BorrowDate.Set {
		l.BorrowDate = r.BorrowDate.Value
	}
	if r.ReturnDate.Set {
		l.ReturnDate = r.ReturnDate.Ptr()
	}
}
