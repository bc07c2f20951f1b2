package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

func (h *Handler) listBorrowers(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBorrower{
		Name:  queryString(r, "name"),
		Email: queryString(r, "email"),
	}
	if find.Email != nil {
		email := strings.ToLower(*find.Email)
		find.Email = &email
	}
	borrowers, err := h.store.ListBorrowers(r.Context(), find)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, borrowers)
}

func (h *Handler) getBorrower(w http.ResponseWriter, r *http.Request) {
	borrower, err := h.store.GetBorrower(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, borrower)
}

func (h *Handler) listBorrowerLoans(w http.ResponseWriter, r *http.Request) {
	borrowerID := request.RouteInt64Param(r, "id")
	if _, err := h.store.GetBorrower(r.Context(), borrowerID); err != nil {
		handleError(w, r, err)
		return
	}

	loans, err := h.store.ListLoans(r.Context(), &model.FindLoan{BorrowerID: &borrowerID})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, loans)
}

func (h *Handler) createBorrower(w http.ResponseWriter, r *http.Request) {
	var create model.BorrowerCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateBorrowerCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	borrower, err := h.store.CreateBorrower(r.Context(), create.Borrower())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, borrower)
}

func (h *Handler) replaceBorrower(w http.ResponseWriter, r *http.Request) {
	var update model.BorrowerUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateBorrowerUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	borrower, err := h.store.UpdateBorrower(r.Context(), request.RouteInt64Param(r, "id"), func(b *model.Borrower) error {
		update.Apply(b)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, borrower)
}

func (h *Handler) patchBorrower(w http.ResponseWriter, r *http.Request) {
	var patch model.BorrowerPatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateBorrowerPatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	borrower, err := h.store.UpdateBorrower(r.Context(), request.RouteInt64Param(r, "id"), func(b *model.Borrower) error {
		patch.Apply(b)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, borrower)
}

func (h *Handler) deleteBorrower(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteBorrower(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("borrower %d deleted", id))
}
