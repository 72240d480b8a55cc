package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter(apiKeys []string) chi.Router {
	r := chi.NewRouter()
	r.Use(BearerAuthMiddleware(apiKeys))
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
	r.Get("/health", ok)
	r.Get("/metrics", ok)
	r.Get("/api/index/status", ok)
	return r
}

func get(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBearerAuth_DisabledWhenNoKeys(t *testing.T) {
	r := newAuthRouter(nil)
	assert.Equal(t, http.StatusOK, get(r, "/api/index/status", "").Code)

	// Blank keys count as no keys.
	r = newAuthRouter([]string{""})
	assert.Equal(t, http.StatusOK, get(r, "/api/index/status", "").Code)
}

func TestBearerAuth_ExemptPaths(t *testing.T) {
	r := newAuthRouter([]string{"secret"})

	assert.Equal(t, http.StatusOK, get(r, "/health", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/metrics", "").Code)
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter([]string{"secret"})
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/index/status", "").Code)
}

func TestBearerAuth_WrongScheme(t *testing.T) {
	r := newAuthRouter([]string{"secret"})
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/index/status", "Basic secret").Code)
}

func TestBearerAuth_InvalidKey(t *testing.T) {
	r := newAuthRouter([]string{"secret"})
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/index/status", "Bearer wrong").Code)
}

func TestBearerAuth_ValidKey(t *testing.T) {
	r := newAuthRouter([]string{"secret", "other"})

	assert.Equal(t, http.StatusOK, get(r, "/api/index/status", "Bearer secret").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/index/status", "Bearer other").Code)
}
