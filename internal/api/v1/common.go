package v1

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/store"
	"github.com/Xunop/biblioteca/internal/validator"
)

// handleError writes the response matching the kind of err.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var fields validator.Errors
	switch {
	case errors.As(err, &fields):
		response.BadRequestWithFields(w, r, validator.ErrInvalid, fields)
	case errors.Is(err, validator.ErrInvalid),
		errors.Is(err, validator.ErrEmptyPatch),
		errors.Is(err, store.ErrDuplicate):
		response.BadRequest(w, r, err)
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrReferenceNotFound):
		response.NotFound(w, r, err)
	case errors.Is(err, store.ErrConflict):
		response.Forbidden(w, r, err)
	default:
		response.ServerError(w, r, err)
	}
}

// decode reads the JSON body into dst, a malformed body is answered with 400
// and false is returned.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := request.ReadJSON(w, r, dst, h.maxBodySize); err != nil {
		response.BadRequest(w, r, err)
		return false
	}
	return true
}

// queryID parses an optional id filter, a malformed one is answered with 400
// and false is returned.
func queryID(w http.ResponseWriter, r *http.Request, param string) (*int64, bool) {
	id, err := request.QueryInt64Param(r, param)
	if err != nil {
		response.BadRequest(w, r, err)
		return nil, false
	}
	return id, true
}

func queryString(r *http.Request, param string) *string {
	if v := request.QueryStringParam(r, param, ""); v != "" {
		return &v
	}
	return nil
}
