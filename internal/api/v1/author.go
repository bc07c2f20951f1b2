package v1

import (
	"fmt"
	"net/http"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

func (h *Handler) listAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.store.ListAuthors(r.Context(), &model.FindAuthor{Name: queryString(r, "name")})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, authors)
}

func (h *Handler) getAuthor(w http.ResponseWriter, r *http.Request) {
	author, err := h.store.GetAuthor(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, author)
}

func (h *Handler) createAuthor(w http.ResponseWriter, r *http.Request) {
	var create model.AuthorCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateAuthorCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	author, err := h.store.CreateAuthor(r.Context(), create.Author())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, author)
}

func (h *Handler) replaceAuthor(w http.ResponseWriter, r *http.Request) {
	var update model.AuthorUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateAuthorUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	author, err := h.store.UpdateAuthor(r.Context(), request.RouteInt64Param(r, "id"), func(a *model.Author) error {
		update.Apply(a)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, author)
}

func (h *Handler) patchAuthor(w http.ResponseWriter, r *http.Request) {
	var patch model.AuthorPatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateAuthorPatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	author, err := h.store.UpdateAuthor(r.Context(), request.RouteInt64Param(r, "id"), func(a *model.Author) error {
		patch.Apply(a)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, author)
}

func (h *Handler) deleteAuthor(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteAuthor(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("author %d deleted", id))
}
