package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersWithCSP(t *testing.T) {
	t.Run("https frontend policy", func(t *testing.T) {
		handler := SecurityHeadersWithCSP(true, FrontendCSP)(okHandler())
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		h := w.Header()
		assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
		assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
		assert.Equal(t, FrontendCSP, h.Get("Content-Security-Policy"))
		assert.Equal(t, "max-age=63072000; includeSubDomains; preload", h.Get("Strict-Transport-Security"))
		assert.Empty(t, h.Get("X-XSS-Protection"))
	})

	t.Run("plain http, no csp", func(t *testing.T) {
		handler := SecurityHeadersWithCSP(false, "")(okHandler())
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	})
}
