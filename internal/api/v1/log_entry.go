package v1

import (
	"fmt"
	"net/http"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/model"
	"github.com/Xunop/biblioteca/internal/validator"
)

// listLogEntries returns the audit log newest first, optionally for one action.
func (h *Handler) listLogEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListLogEntries(r.Context(), &model.FindLogEntry{Action: queryString(r, "action")})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, entries)
}

func (h *Handler) getLogEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.store.GetLogEntry(r.Context(), request.RouteInt64Param(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, entry)
}

func (h *Handler) createLogEntry(w http.ResponseWriter, r *http.Request) {
	var create model.LogEntryCreateRequest
	if !h.decode(w, r, &create) {
		return
	}
	if err := validator.ValidateLogEntryCreateRequest(&create); err != nil {
		handleError(w, r, err)
		return
	}

	entry, err := h.store.CreateLogEntry(r.Context(), &model.LogEntry{Action: create.Action, Description: create.Description})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, r, entry)
}

func (h *Handler) replaceLogEntry(w http.ResponseWriter, r *http.Request) {
	var update model.LogEntryUpdateRequest
	if !h.decode(w, r, &update) {
		return
	}
	if err := validator.ValidateLogEntryUpdateRequest(&update); err != nil {
		handleError(w, r, err)
		return
	}

	entry, err := h.store.UpdateLogEntry(r.Context(), request.RouteInt64Param(r, "id"), func(e *model.LogEntry) error {
		update.Apply(e)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, entry)
}

func (h *Handler) patchLogEntry(w http.ResponseWriter, r *http.Request) {
	var patch model.LogEntryPatchRequest
	if !h.decode(w, r, &patch) {
		return
	}
	if err := validator.ValidateLogEntryPatchRequest(&patch); err != nil {
		handleError(w, r, err)
		return
	}

	entry, err := h.store.UpdateLogEntry(r.Context(), request.RouteInt64Param(r, "id"), func(e *model.LogEntry) error {
		patch.Apply(e)
		return nil
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, r, entry)
}

func (h *Handler) deleteLogEntry(w http.ResponseWriter, r *http.Request) {
	id := request.RouteInt64Param(r, "id")
	if err := h.store.DeleteLogEntry(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	response.Deleted(w, r, fmt.Sprintf("log %d deleted", id))
}
