package model

type Author struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Country string `json:"country" db:"country"`
}

type FindAuthor struct {
	ID *int64
	// Name matches case-insensitively anywhere in the author name.
	Name *string
}

type AuthorCreateRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

func (r *AuthorCreateRequest) Author() *Author {
	return &Author{Name: r.Name, Country: r.Country}
}

// AuthorUpdateRequest replaces every field of an author.
type AuthorUpdateRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

func (r *AuthorUpdateRequest) Apply(a *Author) {
	a.Name = r.Name
	a.Country = r.Country
}

type AuthorPatchRequest struct {
	Name    Optional[string] `json:"name"`
	Country Optional[string] `json:"country"`
}

func (r *AuthorPatchRequest) IsEmpty() bool {
	return !r.Name.Set && !r.Country.Set
}

func (r *AuthorPatchRequest) Apply(a *Author) {
	if r.Name.Set {
		a.Name = r.Name.Value
	}
	if r.Country.Set {
		a.Country = r.Country.Value
	}
}
