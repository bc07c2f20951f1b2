package response

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseHasCommonHeaders(t *testing.T) {
	r, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		New(w, r).Write()
	})

	handler.ServeHTTP(w, r)
	resp := w.Result()

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}

	for header, expected := range headers {
		actual := resp.Header.Get(header)
		if actual != expected {
			t.Fatalf(`Unexpected header value, got %q instead of %q`, actual, expected)
		}
	}
}

func TestBuildResponseWithStatusAndBody(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	New(w, r).WithStatus(http.StatusTeapot).WithHeader("X-Custom", "1").WithBody([]byte("short")).Write()

	resp := w.Result()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Custom"))
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "short", string(body))
}

func TestBuildResponseWithBrotliCompression(t *testing.T) {
	payload := strings.Repeat("dom casmurro ", 200)
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Encoding", "gzip, deflate, br")
	w := httptest.NewRecorder()

	New(w, r).WithBody([]byte(payload)).Write()

	resp := w.Result()
	require.Equal(t, "br", resp.Header.Get("Content-Encoding"))
	body, err := io.ReadAll(brotli.NewReader(resp.Body))
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestBuildResponseWithGzipCompression(t *testing.T) {
	payload := strings.Repeat("quincas borba ", 200)
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	New(w, r).WithBody([]byte(payload)).Write()

	resp := w.Result()
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
	reader, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestBuildResponseWithoutCompression(t *testing.T) {
	payload := strings.Repeat("a", 2048)
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	New(w, r).WithBody([]byte(payload)).WithoutCompression().Write()

	resp := w.Result()
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, payload, string(body))
}
