package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestJSONResponses(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter, r *http.Request)
		status int
		body   string
	}{
		{
			name:   "ok",
			write:  func(w http.ResponseWriter, r *http.Request) { OK(w, r, map[string]int{"id": 1}) },
			status: http.StatusOK,
			body:   `{"id":1}`,
		},
		{
			name:   "created",
			write:  func(w http.ResponseWriter, r *http.Request) { Created(w, r, map[string]string{"name": "Romance"}) },
			status: http.StatusCreated,
			body:   `{"name":"Romance"}`,
		},
		{
			name:   "deleted",
			write:  func(w http.ResponseWriter, r *http.Request) { Deleted(w, r, "author 1 deleted") },
			status: http.StatusOK,
			body:   `{"message":"author 1 deleted"}`,
		},
		{
			name: "bad request with fields",
			write: func(w http.ResponseWriter, r *http.Request) {
				BadRequestWithFields(w, r, errors.New("invalid input"), map[string]string{"name": "must be provided"})
			},
			status: http.StatusBadRequest,
			body:   `{"error_message":"invalid input","fields":{"name":"must be provided"}}`,
		},
		{
			name:   "not found",
			write:  func(w http.ResponseWriter, r *http.Request) { NotFound(w, r, errors.New("author 9: not found")) },
			status: http.StatusNotFound,
			body:   `{"error_message":"author 9: not found"}`,
		},
		{
			name:   "forbidden",
			write:  func(w http.ResponseWriter, r *http.Request) { Forbidden(w, r, errors.New("author 1 is still referenced by books")) },
			status: http.StatusForbidden,
			body:   `{"error_message":"author 1 is still referenced by books"}`,
		},
		{
			name:   "server error carries cause",
			write:  func(w http.ResponseWriter, r *http.Request) { ServerError(w, r, errors.Wrap(errors.New("disk full"), "failed to create author")) },
			status: http.StatusInternalServerError,
			body:   `{"error_message":"failed to create author: disk full"}`,
		},
		{
			name:   "unauthorized",
			write:  func(w http.ResponseWriter, r *http.Request) { Unauthorized(w, r) },
			status: http.StatusUnauthorized,
			body:   `{"error_message":"access unauthorized"}`,
		},
		{
			name:   "too many requests",
			write:  func(w http.ResponseWriter, r *http.Request) { TooManyRequests(w, r) },
			status: http.StatusTooManyRequests,
			body:   `{"error_message":"rate limit exceeded"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/authors", nil)
			w := httptest.NewRecorder()
			tt.write(w, r)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, contentTypeHeader, w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}
