package model

type Book struct {
	ID              int64   `json:"id" db:"id"`
	Title           string  `json:"title" db:"title"`
	AuthorID        int64   `json:"author_id" db:"author_id"`
	PublicationYear int     `json:"publication_year" db:"publication_year"`
	GenreID         int64   `json:"genre_id" db:"genre_id"`
	Image           *string `json:"image" db:"image"`
}

type FindBook struct {
	ID       *int64
	Title    *string
	AuthorID *int64
	// AuthorName matches case-insensitively anywhere in the author name.
	AuthorName *string
	GenreID    *int64
}

type BookCreateRequest struct {
	Title           string  `json:"title"`
	AuthorID        int64   `json:"author_id"`
	PublicationYear int     `json:"publication_year"`
	GenreID         int64   `json:"genre_id"`
	Image           *string `json:"image"`
}

func (r *BookCreateRequest) Book() *Book {
	return &Book{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		PublicationYear: r.PublicationYear,
		GenreID:         r.GenreID,
		Image:           r.Image,
	}
}

type BookUpdateRequest struct {
	Title           string  `json:"title"`
	AuthorID        int64   `json:"author_id"`
	PublicationYear int     `json:"publication_year"`
	GenreID         int64   `json:"genre_id"`
	Image           *string `json:"image"`
}

func (r *BookUpdateRequest) Apply(b *Book) {
	b.Title = r.Title
	b.AuthorID = r.AuthorID
	b.PublicationYear = r.PublicationYear
	b.GenreID = r.GenreID
	b.Image = r.Image
}

type BookPatchRequest struct {
	Title           Optional[string] `json:"title"`
	AuthorID        Optional[int64]  `json:"author_id"`
	PublicationYear Optional[int]    `json:"publication_year"`
	GenreID         Optional[int64]  `json:"genre_id"`
	Image           Optional[string] `json:"image"`
}

func (r *BookPatchRequest) IsEmpty() bool {
	return !r.Title.Set && !r.AuthorID.Set && !r.PublicationYear.Set && !r.GenreID.Set && !r.Image.Set
}

func (r *BookPatchRequest) Apply(b *Book) {
	if r.Title.Set {
		b.Title = r.Title.Value
	}
	if r.AuthorID.Set {
		b.AuthorID = r.AuthorID.Value
	}
	if r.PublicationYear.Set {
		b.PublicationYear = r.PublicationYear.Value
	}
	if r.GenreID.Set {
		b.GenreID = r.GenreID.Value
	}
	if r.Image.Set {
		b.Image = r.Image.Ptr()
	}
}
