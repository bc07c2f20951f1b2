package v1

import (
	"fmt"
	"net/http"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

func (h *Handler) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.store.ListGenres(r.Context(), &model.FindGenre{Name: queryString(r, "name")})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, genres)
}

func (h *Handler) getGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := h.store.GetGenre(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, genre)
}

func (h *Handler) listGenreBooks(w http.ResponseWriter, r *http.Request) {
	genreID := request.RouteInt64Param(r, "id")
	if _, err := h.store.GetGenre(r.Context(), genreID); err != nil {
		handleError(w, r, err)
		return
	}

	books, err := h.store.ListBooks(r.Context(), &model.FindBook{GenreID: &genreID})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) createGenre(w http.ResponseWriter, r *http.Request) {
	var create model.GenreCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateGenreCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	genre, err := h.store.CreateGenre(r.Context(), &model.Genre{Name: create.Name})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, genre)
}

func (h *Handler) replaceGenre(w http.ResponseWriter, r *http.Request) {
	var update model.GenreUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateGenreUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	genre, err := h.store.UpdateGenre(r.Context(), request.RouteInt64Param(r, "id"), func(g *model.Genre) error {
		update.Apply(g)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, genre)
}

func (h *Handler) patchGenre(w http.ResponseWriter, r *http.Request) {
	var patch model.GenrePatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateGenrePatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	genre, err := h.store.UpdateGenre(r.Context(), request.RouteInt64Param(r, "id"), func(g *model.Genre) error {
		patch.Apply(g)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, genre)
}

func (h *Handler) deleteGenre(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteGenre(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("genre %d deleted", id))
}
