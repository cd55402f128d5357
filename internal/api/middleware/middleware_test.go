package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("wildcard allows any origin", func(t *testing.T) {
		h := CORSMiddleware(nil)(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
		req.Header.Set("Origin", "http://example.com")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		h := CORSMiddleware([]string{"http://app.local"})(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://app.local")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, "http://app.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("unlisted origin gets no allow header", func(t *testing.T) {
		h := CORSMiddleware([]string{"http://app.local"})(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.local")
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		h := CORSMiddleware(nil)(okHandler())
		req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLoggingMiddleware_PassesStatusThrough(t *testing.T) {
	h := LoggingMiddleware(okHandler())
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestObservabilityMiddleware_NilMetrics(t *testing.T) {
	h := ObservabilityMiddleware(nil)(okHandler())
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hospitals/7", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRouteOf(t *testing.T) {
	cases := map[string]string{
		"/api/hospitals/7":          "/api/hospitals/{id}",
		"/api/hospitals/7/slots":    "/api/hospitals/{id}/slots",
		"/api/hospitals/search":     "/api/hospitals/search",
		"/api/comparison/diff":      "/api/comparison/diff",
		"/api/bookings/bk-1/cancel": "/api/bookings/{id}/cancel",
		"/api/catalog/treatments":   "/api/catalog/treatments",
		"/health":                   "/health",
	}
	for path, want := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		assert.Equal(t, want, routeOf(req), path)
	}
}
