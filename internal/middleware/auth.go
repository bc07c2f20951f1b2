package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Xunop/biblioteca/internal/auth"
	"github.com/Xunop/biblioteca/internal/http/request"
	"github.com/Xunop/biblioteca/internal/http/response"
	"github.com/Xunop/biblioteca/internal/log"
)

// WriteGuard requires a valid bearer token on every request that changes
// data. Reads pass through untouched.
func WriteGuard(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isReadOnly(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := auth.ParseAccessToken(getAccessToken(r), []byte(secret))
			if err != nil {
				log.Debug("Failed to authenticate write request",
					zap.String("client_ip", request.ClientIP(r)),
					zap.String("user_agent", r.UserAgent()),
					zap.Error(err),
				)
				response.Unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), request.TokenSubjectContextKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func getAccessToken(r *http.Request) string {
	authorizationHeader := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(authorizationHeader, "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}
