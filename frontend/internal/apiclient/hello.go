package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/admissible-dev/admissible-demo/shared/api"
)

func (c *APIClient) Hello(ctx context.Context, cookies []*http.Cookie) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/hello", nil, cookies...)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return "", statusError(resp, "hello failed")
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("failed to read hello response: %w", err)
	}
	return string(body), nil
}

// Activity fetches the caller's most recent events.
func (c *APIClient) Activity(ctx context.Context, cookies []*http.Cookie, limit int) ([]api.ActivityEvent, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/activity?limit="+strconv.Itoa(limit), nil, cookies...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, statusError(resp, "activity failed")
	}
	var out api.ActivityResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse activity: %w", err)
	}
	return out.Events, nil
}
