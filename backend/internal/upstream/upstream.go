// Package upstream talks to the auth provider. The provider owns sign-in,
// token issuance and validation; this package only moves requests and
// responses across and reads its authorizer decision.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/api"
	"github.com/admissible-dev/admissible-demo/shared/domain"
	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/admissible-dev/admissible-demo/shared/middleware"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider routes.
const (
	RouteInit    = "/api/auth/init"
	RouteOtp     = "/api/auth/otp"
	RouteRefresh = "/api/auth/refresh"
	RouteSignout = "/api/auth/signout"
	RouteStatus  = "/api/auth/status"
)

const maxResponseBody = 1 << 20

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "admissible",
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the auth provider by route and status",
		},
		[]string{"route", "status"},
	)
	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "admissible",
			Name:      "upstream_request_duration_seconds",
			Help:      "Auth provider latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// request headers passed through to the provider
var forwardedHeaders = []string{"Content-Type", "Accept", "Authorization", "Cookie", "User-Agent"}

// response headers never copied back
var droppedHeaders = map[string]bool{
	"Connection":        true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Content-Length":    true,
	"Server":            true,
}

var errUnavailable = &internal_errors.ErrorWithStatusCode{Message: "Auth provider unavailable", StatusCode: http.StatusBadGateway}

type Client struct {
	BaseURL    string
	HttpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HttpClient: &http.Client{Timeout: timeout},
	}
}

// Response is a buffered provider response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Forward sends r to route with body and returns the provider's answer.
// Transport failures come back as a 502 ErrorWithStatusCode.
func (c *Client) Forward(ctx context.Context, route string, r *http.Request, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.BaseURL+route, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	copyRequestHeaders(req, r)

	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	upstreamRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequestsTotal.WithLabelValues(route, "error").Inc()
		logger.Log.Error("auth provider request failed", "route", route, "error", err)
		return nil, errUnavailable
	}
	defer resp.Body.Close()
	upstreamRequestsTotal.WithLabelValues(route, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		logger.Log.Error("reading auth provider response", "route", route, "error", err)
		return nil, errUnavailable
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

// Authorize asks the provider's status endpoint whether r is signed in.
// 200 allows and yields the email; 401 and 403 deny. Nothing is cached.
func (c *Client) Authorize(ctx context.Context, r *http.Request) (*domain.Identity, error) {
	statusReq := r.Clone(ctx)
	statusReq.Method = http.MethodGet
	statusReq.Header.Del("Content-Type")

	resp, err := c.Forward(ctx, RouteStatus, statusReq, nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: provider answered %d", middleware.ErrDenied, resp.StatusCode)
	default:
		logger.Log.Error("unexpected authorizer status", "status", resp.StatusCode)
		return nil, errUnavailable
	}

	var status api.StatusResponse
	if err := json.Unmarshal(resp.Body, &status); err != nil || status.Email == "" {
		logger.Log.Error("malformed authorizer response", "error", err)
		return nil, errUnavailable
	}
	return &domain.Identity{Email: status.Email}, nil
}

// WriteResponse copies a provider response to w, Set-Cookie included.
func WriteResponse(w http.ResponseWriter, resp *Response) {
	for name, values := range resp.Header {
		if droppedHeaders[http.CanonicalHeaderKey(name)] {
			continue
		}
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

func copyRequestHeaders(dst, src *http.Request) {
	for _, name := range forwardedHeaders {
		for _, v := range src.Header.Values(name) {
			dst.Header.Add(name, v)
		}
	}
	if id := chimw.GetReqID(src.Context()); id != "" {
		dst.Header.Set("X-Request-Id", id)
	}
	if ip, _, err := net.SplitHostPort(src.RemoteAddr); err == nil {
		dst.Header.Set("X-Forwarded-For", ip)
	}
}
