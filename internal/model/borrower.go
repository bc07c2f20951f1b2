package model

type Borrower struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Email string  `json:"email" db:"email"`
	Phone *string `json:"phone" db:"phone"`
}

type FindBorrower struct {
	ID    *int64
	Email *string
	Name  *string
}

type BorrowerCreateRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

func (r *BorrowerCreateRequest) Borrower() *Borrower {
	return &Borrower{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type BorrowerUpdateRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

func (r *BorrowerUpdateRequest) Apply(b *Borrower) {
	b.Name = r.Name
	b.Email = r.Email
	b.Phone = r.Phone
}

type BorrowerPatchRequest struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
	Phone Optional[string] `json:"phone"`
}

func (r *BorrowerPatchRequest) IsEmpty() bool {
	return !r.Name.Set && !r.Email.Set && !r.Phone.Set
}

func (r *BorrowerPatchRequest) Apply(b *Borrower) {
	if r.Name.Set {
		b.Name = r.Name.Value
	}
	if r.Email.Set {
		b.Email = r.Email.Value
	}
	if r.Phone.Set {
		b.Phone = r.Phone.Ptr()
	}
}
