package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
	"github.com/admissible-dev/admissible-demo/shared/middleware/ratelimiter"
	"github.com/admissible-dev/admissible-demo/shared/utils"
)

const maxIdentityBody = 64 << 10

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return RateLimitWithHandler(rl, getIdentity, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
	})
}

// RateLimitWithHandler is RateLimit with a custom response for rejected
// requests (the frontend redirects with a flash message instead of a 429).
func RateLimitWithHandler(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error), onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				onLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.UserRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIP extracts the client IP from RemoteAddr.
// X-Real-IP / X-Forwarded-For are ignored; put TrustedRealIP in front when
// running behind a proxy.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}

// GetEmailFromBody reads the email field of a JSON body and restores the
// body for the handler.
func GetEmailFromBody(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxIdentityBody))
	if err != nil {
		return "", errors.New("failed to read request body")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var data struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", badRequest("invalid request body")
	}
	if data.Email == "" {
		return "", badRequest("email field is required")
	}
	return strings.ToLower(strings.TrimSpace(data.Email)), nil
}

// badRequest rejects a request whose rate-limit key cannot be read.
func badRequest(msg string) error {
	return &internal_errors.ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}
