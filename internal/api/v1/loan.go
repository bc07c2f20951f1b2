package v1

import (
	"fmt"
	"net/http"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

// listLoans filters by borrower_id and book_id. open=true keeps the loans
// without a return date, open=false the returned ones.
func (h *Handler) listLoans(w http.ResponseWriter, r *http.Request) {
	borrowerID, ok := queryID(w, r, "borrower_id")
	if !ok {
		return
	}
	bookID, ok := queryID(w, r, "book_id")
	if !ok {
		return
	}
	open, err := request.QueryBoolParam(r, "open")
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	loans, err := h.store.ListLoans(r.Context(), &model.FindLoan{BorrowerID: borrowerID, BookID: bookID, Open: open})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, loans)
}

func (h *Handler) getLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.store.GetLoan(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, loan)
}

func (h *Handler) createLoan(w http.ResponseWriter, r *http.Request) {
	var create model.LoanCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateLoanCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	loan, err := h.store.CreateLoan(r.Context(), create.Loan())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, loan)
}

func (h *Handler) replaceLoan(w http.ResponseWriter, r *http.Request) {
	var update model.LoanUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateLoanUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	loan, err := h.store.UpdateLoan(r.Context(), request.RouteInt64Param(r, "id"), func(l *model.Loan) error {
		update.Apply(l)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, loan)
}

// patchLoan checks the date ordering on the loan with the patch applied.
func (h *Handler) patchLoan(w http.ResponseWriter, r *http.Request) {
	var patch model.LoanPatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateLoanPatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	loan, err := h.store.UpdateLoan(r.Context(), request.RouteInt64Param(r, "id"), func(l *model.Loan) error {
		patch.Apply(l)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, loan)
}

func (h *Handler) deleteLoan(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteLoan(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("loan %d deleted", id))
}
