package model

// Stock is keyed by its book, there is at most one row per book.
type Stock struct {
	BookID   int64 `json:"book_id" db:"book_id"`
	Quantity int   `json:"quantity" db:"quantity"`
}

type FindStock struct {
	BookID *int64
}

type StockCreateRequest struct {
	BookID   int64 `json:"book_id"`
	Quantity *int  `json:"quantity"`
}

func (r *StockCreateRequest) Stock() *Stock {
	stock := &Stock{BookID: r.BookID}
	if r.Quantity != nil {
		stock.Quantity = *r.Quantity
	}
	return stock
}

// StockUpdateRequest only carries the quantity, the book is the key.
type StockUpdateRequest struct {
	Quantity *int `json:"quantity"`
}

func (r *StockUpdateRequest) Apply(s *Stock) {
	if r.Quantity != nil {
		s.Quantity = *r.Quantity
	}
}

type StockPatchRequest struct {
	Quantity Optional[int] `json:"quantity"`
}

func (r *StockPatchRequest) IsEmpty() bool {
	return !r.Quantity.Set
}

func (r *StockPatchRequest) Apply(s *Stock) {
	if r.Quantity.Set {
		s.Quantity = r.Quantity.Value
	}
}
