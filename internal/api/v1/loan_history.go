package v1

import (
	"fmt"
	"net/http"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

func (h *Handler) listLoanHistory(w http.ResponseWriter, r *http.Request) {
	h.writeLoanHistory(w, r, &model.FindLoanHistory{})
}

func (h *Handler) listLoanHistoryByBook(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt64Param(r, "id")
	h.writeLoanHistory(w, r, &model.FindLoanHistory{BookID: &bookID})
}

func (h *Handler) listLoanHistoryByBorrower(w http.ResponseWriter, r *http.Request) {
	borrowerID := request.RouteInt64Param(r, "id")
	h.writeLoanHistory(w, r, &model.FindLoanHistory{BorrowerID: &borrowerID})
}

// writeLoanHistory applies the action query parameter to find and writes the
// matching records.
func (h *Handler) writeLoanHistory(w http.ResponseWriter, r *http.Request, find *model.FindLoanHistory) {
	action, err := model.ParseLoanActionFilter(request.QueryStringParam(r, "action", "all"))
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}
	find.Action = action

	records, err := h.store.ListLoanHistory(r.Context(), find)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, records)
}

func (h *Handler) getLoanHistory(w http.ResponseWriter, r *http.Request) {
	record, err := h.store.GetLoanHistory(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, record)
}

func (h *Handler) createLoanHistory(w http.ResponseWriter, r *http.Request) {
	var create model.LoanHistoryCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateLoanHistoryCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	record, err := h.store.CreateLoanHistory(r.Context(), create.LoanHistory())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, record)
}

func (h *Handler) replaceLoanHistory(w http.ResponseWriter, r *http.Request) {
	var update model.LoanHistoryUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateLoanHistoryUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	record, err := h.store.UpdateLoanHistory(r.Context(), request.RouteInt64Param(r, "id"), func(l *model.LoanHistory) error {
		update.Apply(l)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, record)
}

func (h *Handler) patchLoanHistory(w http.ResponseWriter, r *http.Request) {
	var patch model.LoanHistoryPatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateLoanHistoryPatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	record, err := h.store.UpdateLoanHistory(r.Context(), request.RouteInt64Param(r, "id"), func(l *model.LoanHistory) error {
		patch.Apply(l)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, record)
}

func (h *Handler) deleteLoanHistory(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteLoanHistory(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("loan history %d deleted", id))
}
