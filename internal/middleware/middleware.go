package middleware // import "github.com/Xunop/biblioteca/internal/middleware"

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/log"
)

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestContext stores the client IP and a request id in the request context
// and logs every request once it is served.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := request.FindClientIP(r)
		requestID := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := r.Context()
		ctx = context.WithValue(ctx, request.ClientIPContextKey, clientIP)
		ctx = context.WithValue(ctx, request.RequestIDContextKey, requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		t1 := time.Now()
		defer func() {
			log.Debug("Incoming request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("proto", r.Proto),
				zap.String("client_ip", clientIP),
				zap.Int("status", recorder.status),
				zap.Duration("duration", time.Since(t1)))
		}()

		next.ServeHTTP(recorder, r.WithContext(ctx))
	})
}

// CORS allows cross origin calls from allowedOrigin.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, X-Request-Id")
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Max-Age", "7200")
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var errPanic = errors.New("internal server error")

// Recover turns a panic in a handler into a 500 response. The panic value is
// logged, never sent to the client.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Recovered from panic",
					zap.String("request_id", request.RequestID(r)),
					zap.String("path", r.URL.Path),
					zap.String("panic", fmt.Sprint(err)),
					zap.Stack("stack"))
				w.Header().Set("Connection", "close")
				response.ServerError(w, r, errPanic)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
