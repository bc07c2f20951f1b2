package response

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/log"
)

const contentTypeHeader = `application/json`

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OK creates a new JSON response with a 200 status code.
func OK(w http.ResponseWriter, r *http.Request, body interface{}) {
	builder := New(w, r)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSON(body))
	builder.Write()
}

// Created sends a created response to the client.
func Created(w http.ResponseWriter, r *http.Request, body interface{}) {
	builder := New(w, r)
	builder.WithStatus(http.StatusCreated)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSON(body))
	builder.Write()
}

// Deleted confirms a delete with a 200 status code and a message.
func Deleted(w http.ResponseWriter, r *http.Request, message string) {
	OK(w, r, map[string]string{"message": message})
}

// NoContent sends a no content response to the client.
func NoContent(w http.ResponseWriter, r *http.Request) {
	builder := New(w, r)
	builder.WithStatus(http.StatusNoContent)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.Write()
}

// ServerError sends an internal error to the client, the message of err is
// included for diagnostics.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error(http.StatusText(http.StatusInternalServerError),
		append(requestFields(r, http.StatusInternalServerError), zap.Error(err))...,
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusInternalServerError)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(err, nil))
	builder.Write()
}

// BadRequest sends a bad request error to the client.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	BadRequestWithFields(w, r, err, nil)
}

// BadRequestWithFields sends a bad request error naming the failing fields.
func BadRequestWithFields(w http.ResponseWriter, r *http.Request, err error, fields map[string]string) {
	log.Warn(http.StatusText(http.StatusBadRequest),
		append(requestFields(r, http.StatusBadRequest), zap.Error(err))...,
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusBadRequest)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(err, fields))
	builder.Write()
}

// Unauthorized sends a not authorized error to the client.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusUnauthorized), requestFields(r, http.StatusUnauthorized)...)

	builder := New(w, r)
	builder.WithStatus(http.StatusUnauthorized)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithHeader("WWW-Authenticate", `Bearer realm="biblioteca"`)
	builder.WithBody(toJSONError(errors.New("access unauthorized"), nil))
	builder.Write()
}

// Forbidden sends a forbidden error to the client.
func Forbidden(w http.ResponseWriter, r *http.Request, err error) {
	log.Warn(http.StatusText(http.StatusForbidden),
		append(requestFields(r, http.StatusForbidden), zap.Error(err))...,
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusForbidden)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(err, nil))
	builder.Write()
}

// NotFound sends a not found error to the client, err says what is missing.
func NotFound(w http.ResponseWriter, r *http.Request, err error) {
	log.Warn(http.StatusText(http.StatusNotFound),
		append(requestFields(r, http.StatusNotFound), zap.Error(err))...,
	)

	builder := New(w, r)
	builder.WithStatus(http.StatusNotFound)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithBody(toJSONError(err, nil))
	builder.Write()
}

// TooManyRequests tells the client to slow down.
func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	log.Warn(http.StatusText(http.StatusTooManyRequests), requestFields(r, http.StatusTooManyRequests)...)

	builder := New(w, r)
	builder.WithStatus(http.StatusTooManyRequests)
	builder.WithHeader("Content-Type", contentTypeHeader)
	builder.WithHeader("Retry-After", "1")
	builder.WithBody(toJSONError(errors.New("rate limit exceeded"), nil))
	builder.Write()
}

func requestFields(r *http.Request, statusCode int) []zap.Field {
	return []zap.Field{
		zap.String("client_ip", request.FindClientIP(r)),
		zap.String("request_id", request.RequestID(r)),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
		zap.String("request.user_agent", r.UserAgent()),
		zap.Int("response.status_code", statusCode),
	}
}

type errorMsg struct {
	ErrorMessage string            `json:"error_message"`
	Fields       map[string]string `json:"fields,omitempty"`
}

func toJSONError(err error, fields map[string]string) []byte {
	return toJSON(errorMsg{ErrorMessage: err.Error(), Fields: fields})
}

func toJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("Unable to marshal JSON response", zap.Error(err))
		return []byte("")
	}

	return b
}
