package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xunop/biblioteca/internal/auth"
	"github.com/Xunop/biblioteca/internal/http/request"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestContext(t *testing.T) {
	var gotIP, gotID string
	h := RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = request.ClientIP(r)
		gotID = request.RequestID(r)
	}))

	r := httptest.NewRequest("GET", "/api/v1/authors", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "203.0.113.7", gotIP)
	_, err := uuid.Parse(gotID)
	assert.NoError(t, err)
	assert.Equal(t, gotID, w.Header().Get(requestIDHeader))

	// A well formed incoming id is kept.
	id := uuid.NewString()
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set(requestIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, id, gotID)
}

func TestCORS(t *testing.T) {
	h := CORS("https://library.example.com")(okHandler)

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://library.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
	assert.JSONEq(t, `{"error_message":"internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := NewRateLimiter(ctx, 1, 2)
	h := limiter.Middleware(okHandler)

	codes := []int{}
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "198.51.100.1:4000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "198.51.100.2:4000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := NewRateLimiter(ctx, 1, 1)
	limiter.Allow("198.51.100.1")

	limiter.evict(time.Now().Add(clientIdleTimeout + time.Second))
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.clients)
}

func TestWriteGuard(t *testing.T) {
	secret := "s3cret"
	var subject string
	h := WriteGuard(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = request.TokenSubject(r)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/books/1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.GenerateAccessToken("librarian", time.Now().Add(time.Hour), []byte(secret))
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/books", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "librarian", subject)

	r = httptest.NewRequest(http.MethodPatch, "/api/v1/books/1", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
