package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("allows request within rate limit", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("identity error is written with its status", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "", errors.New("Test error") })(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("blocks request exceeding rate limit", func(t *testing.T) {
		rl := ratelimiter.New(0.001, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)
		assert.Equal(t, "Rate limit exceeded, try again later\n", w2.Body.String())
	})

	t.Run("custom handler on rate limit exceeded", func(t *testing.T) {
		rl := ratelimiter.New(0.001, 1, time.Minute)
		defer rl.Stop()
		called := false
		handler := RateLimitWithHandler(rl,
			func(r *http.Request) (string, error) { return "user1", nil },
			func(w http.ResponseWriter, r *http.Request) {
				called = true
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
			},
		)(okHandler())

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/signin", nil))
		assert.False(t, called)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/signin", nil))
		assert.True(t, called)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
		wantErr    bool
	}{
		{name: "ipv4 with port", remoteAddr: "192.168.1.100:54321", want: "192.168.1.100"},
		{name: "ipv6 with port", remoteAddr: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "no port", remoteAddr: "10.0.0.7", want: "10.0.0.7"},
		{name: "garbage", remoteAddr: "not-an-ip", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", "10.9.9.9")

			ip, err := GetIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ip)
		})
	}
}

func TestGetEmailFromBody(t *testing.T) {
	t.Run("restores body for the handler", func(t *testing.T) {
		raw := `{"email": " User@Example.com ", "otp": "123456"}`
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(raw))

		email, err := GetEmailFromBody(req)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", email)

		after, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Equal(t, raw, string(after))
	})

	t.Run("missing email is a bad request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{"otp": "1"}`))
		_, err := GetEmailFromBody(req)
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", bytes.NewBufferString(`{`))
		_, err := GetEmailFromBody(req)
		assert.Error(t, err)
	})
}
