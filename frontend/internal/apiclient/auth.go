package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/admissible-dev/admissible-demo/shared/api"
)

// Init asks the provider to email a passcode and returns the session token
// that must accompany the passcode.
func (c *APIClient) Init(ctx context.Context, email string) (string, error) {
	jsonBody, err := json.Marshal(api.InitRequest{Email: email})
	if err != nil {
		return "", fmt.Errorf("failed to marshal init data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/init", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return "", statusError(resp, "init failed")
	}
	var out api.InitResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse init response: %w", err)
	}
	if out.Session == "" {
		return "", fmt.Errorf("init response has no session")
	}
	return out.Session, nil
}

// SubmitOtp exchanges the passcode for the provider's session cookies.
func (c *APIClient) SubmitOtp(ctx context.Context, email, otp, session string) ([]*http.Cookie, error) {
	jsonBody, err := json.Marshal(api.OtpRequest{Email: email, Otp: otp, Session: session})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal otp data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/otp", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, statusError(resp, "otp failed")
	}
	return resp.Cookies(), nil
}

// Refresh implements refresh.Refresher.
func (c *APIClient) Refresh(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error) {
	return c.cookieCall(ctx, "/api/auth/refresh", "refresh failed", cookies)
}

// Signout returns the cookies that clear the session.
func (c *APIClient) Signout(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error) {
	return c.cookieCall(ctx, "/api/auth/signout", "signout failed", cookies)
}

func (c *APIClient) cookieCall(ctx context.Context, path, what string, cookies []*http.Cookie) ([]*http.Cookie, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, cookies...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return nil, statusError(resp, what)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
	return resp.Cookies(), nil
}

// Status returns the signed-in email. A visitor without a valid session gets
// an error whose status is 403.
func (c *APIClient) Status(ctx context.Context, cookies []*http.Cookie) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, cookies...)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !ok(resp) {
		return "", statusError(resp, "status failed")
	}
	var out api.StatusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse status response: %w", err)
	}
	return out.Email, nil
}
