package middleware

import (
	"net/http"
)

const (
	// FrontendCSP allows inline styles for the server-rendered pages.
	FrontendCSP = "default-src 'self'; style-src 'unsafe-inline';"
	// APICSP: JSON and text only, nothing may be embedded.
	APICSP = "default-src 'none'; frame-ancestors 'none'"

	hstsValue = "max-age=63072000; includeSubDomains; preload"
)

// SecurityHeadersWithCSP sets the response headers policy used for every
// response. isHTTPS adds Strict-Transport-Security. X-XSS-Protection is not
// set; browsers that still honour it are better off without it.
func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "no-referrer")
			headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

			if csp != "" {
				headers.Set("Content-Security-Policy", csp)
			}
			if isHTTPS {
				headers.Set("Strict-Transport-Security", hstsValue)
			}

			next.ServeHTTP(w, r)
		})
	}
}
