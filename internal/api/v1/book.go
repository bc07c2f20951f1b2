package v1

import (
	"fmt"
	"net/http"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

// listBooks filters by author_id, author_name and genre_id, all optional and
// combinable.
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	authorID, ok := queryID(w, r, "author_id")
	if !ok {
		return
	}
	genreID, ok := queryID(w, r, "genre_id")
	if !ok {
		return
	}
	find := &model.FindBook{
		AuthorID:   authorID,
		GenreID:    genreID,
		AuthorName: queryString(r, "author_name"),
		Title:      queryString(r, "title"),
	}

	books, err := h.store.ListBooks(r.Context(), find)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) listBooksByAuthorID(w http.ResponseWriter, r *http.Request) {
	authorID := request.RouteInt64Param(r, "id")
	if _, err := h.store.GetAuthor(r.Context(), authorID); err != nil {
		handleError(w, r, err)
		return
	}

	books, err := h.store.ListBooks(r.Context(), &model.FindBook{AuthorID: &authorID})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

// listBooksByAuthorName matches the name anywhere in the author name, ignoring case.
func (h *Handler) listBooksByAuthorName(w http.ResponseWriter, r *http.Request) {
	name := request.RouteStringParam(r, "name")
	books, err := h.store.ListBooks(r.Context(), &model.FindBook{AuthorName: &name})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.store.GetBook(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var create model.BookCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateBookCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	book, err := h.store.CreateBook(r.Context(), create.Book())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, book)
}

func (h *Handler) replaceBook(w http.ResponseWriter, r *http.Request) {
	var update model.BookUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateBookUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	book, err := h.store.UpdateBook(r.Context(), request.RouteInt64Param(r, "id"), func(b *model.Book) error {
		update.Apply(b)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) patchBook(w http.ResponseWriter, r *http.Request) {
	var patch model.BookPatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateBookPatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	book, err := h.store.UpdateBook(r.Context(), request.RouteInt64Param(r, "id"), func(b *model.Book) error {
		patch.Apply(b)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, book)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteBook(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("book %d deleted", id))
}
