package model

type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type FindGenre struct {
	ID   *int64
	Name *string
}

type GenreCreateRequest struct {
	Name string `json:"name"`
}

type GenreUpdateRequest struct {
	Name string `json:"name"`
}

func (r *GenreUpdateRequest) Apply(g *Genre) {
	g.Name = r.Name
}

type GenrePatchRequest struct {
	Name Optional[string] `json:"name"`
}

func (r *GenrePatchRequest) IsEmpty() bool {
	return !r.Name.Set
}

func (r *GenrePatchRequest) Apply(g *Genre) {
	if r.Name.Set {
		g.Name = r.Name.Value
	}
}
