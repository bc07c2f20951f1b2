package v1

import (
	"fmt"
	"net/http"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	bookID, ok := queryID(w, r, "book_id")
	if !ok {
		return
	}
	stock, err := h.store.ListStock(r.Context(), &model.FindStock{BookID: bookID})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, stock)
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.store.GetStock(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, stock)
}

func (h *Handler) createStock(w http.ResponseWriter, r *http.Request) {
	var create model.StockCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateStockCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	stock, err := h.store.CreateStock(r.Context(), create.Stock())
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, stock)
}

func (h *Handler) replaceStock(w http.ResponseWriter, r *http.Request) {
	var update model.StockUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateStockUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	stock, err := h.store.UpdateStock(r.Context(), request.RouteInt64Param(r, "id"), func(s *model.Stock) error {
		update.Apply(s)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, stock)
}

func (h *Handler) patchStock(w http.ResponseWriter, r *http.Request) {
	var patch model.StockPatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateStockPatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	stock, err := h.store.UpdateStock(r.Context(), request.RouteInt64Param(r, "id"), func(s *model.Stock) error {
		patch.Apply(s)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, stock)
}

func (h *Handler) deleteStock(w http.ResponseWriter, r *http.Request) {
	bookID := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteStock(r.Context(), bookID); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("stock of book %d deleted", bookID))
}
