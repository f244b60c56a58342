package apiclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
)

const maxResponseBody = 1 << 20

// APIClient struct handles all communication with the gateway.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

// New creates a new client for interacting with the gateway.
func New(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Timeout: timeout},
	}
}

type clientIPKey struct{}

// ForwardClientIP remembers the browser's address so gateway calls made on
// its behalf carry it in X-Forwarded-For.
func ForwardClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		ctx := context.WithValue(r.Context(), clientIPKey{}, ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// do is the single helper for gateway requests. The caller closes the body.
func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader, cookies ...*http.Cookie) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok && ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// statusError turns a non 2xx response into an error carrying its status.
func statusError(resp *http.Response, what string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &internal_errors.ErrorWithStatusCode{
		Message:    fmt.Sprintf("%s: %s", what, strings.TrimSpace(string(body))),
		StatusCode: resp.StatusCode,
	}
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
