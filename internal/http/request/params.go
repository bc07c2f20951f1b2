package request

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// RouteInt64Param returns an URL route parameter as int64, 0 when it is not a
// positive integer.
func RouteInt64Param(r *http.Request, param string) int64 {
	vars := mux.Vars(r)
	value, err := strconv.ParseInt(vars[param], 10, 64)
	if err != nil {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

// RouteStringParam returns a URL route parameter as string.
func RouteStringParam(r *http.Request, param string) string {
	vars := mux.Vars(r)
	return vars[param]
}

// QueryStringParam returns a query string parameter as string.
func QueryStringParam(r *http.Request, param, defaultValue string) string {
	value := r.URL.Query().Get(param)
	if value == "" {
		value = defaultValue
	}
	return value
}

// QueryInt64Param parses an optional positive id from the query string.
// A missing parameter is nil, a malformed one is an error.
func QueryInt64Param(r *http.Request, param string) (*int64, error) {
	value := r.URL.Query().Get(param)
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return nil, errors.Errorf("%s must be a positive integer", param)
	}
	return &id, nil
}

// QueryBoolParam parses an optional boolean from the query string.
func QueryBoolParam(r *http.Request, param string) (*bool, error) {
	value := r.URL.Query().Get(param)
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, errors.Errorf("%s must be true or false", param)
	}
	return &b, nil
}

// HasQueryParam checks if the query string contains the given parameter.
func HasQueryParam(r *http.Request, param string) bool {
	values := r.URL.Query()
	_, ok := values[param]
	return ok
}
