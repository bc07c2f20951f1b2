package request // import "github.com/Xunop/biblioteca/internal/http/request"

import "net/http"

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	RequestIDContextKey
	TokenSubjectContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// RequestID returns the id assigned to the request by the middleware.
func RequestID(r *http.Request) string {
	return getContextStringValue(r, RequestIDContextKey)
}

// TokenSubject returns the subject of the access token that authorized a write.
func TokenSubject(r *http.Request) string {
	return getContextStringValue(r, TokenSubjectContextKey)
}
