package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/admissible-dev/admissible-demo/frontend/web"
	"github.com/admissible-dev/admissible-demo/shared/api"
	"github.com/admissible-dev/admissible-demo/shared/config"
	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockAPI struct {
	MockInit      func(ctx context.Context, email string) (string, error)
	MockSubmitOtp func(ctx context.Context, email, otp, session string) ([]*http.Cookie, error)
	MockSignout   func(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error)
	MockStatus    func(ctx context.Context, cookies []*http.Cookie) (string, error)
	MockHello     func(ctx context.Context, cookies []*http.Cookie) (string, error)
	MockActivity  func(ctx context.Context, cookies []*http.Cookie, limit int) ([]api.ActivityEvent, error)
}

func (m *MockAPI) Init(ctx context.Context, email string) (string, error) {
	if m.MockInit != nil {
		return m.MockInit(ctx, email)
	}
	return "session", nil
}

func (m *MockAPI) SubmitOtp(ctx context.Context, email, otp, session string) ([]*http.Cookie, error) {
	if m.MockSubmitOtp != nil {
		return m.MockSubmitOtp(ctx, email, otp, session)
	}
	return nil, nil
}

func (m *MockAPI) Signout(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error) {
	if m.MockSignout != nil {
		return m.MockSignout(ctx, cookies)
	}
	return nil, nil
}

func (m *MockAPI) Status(ctx context.Context, cookies []*http.Cookie) (string, error) {
	if m.MockStatus != nil {
		return m.MockStatus(ctx, cookies)
	}
	return "", forbidden
}

func (m *MockAPI) Hello(ctx context.Context, cookies []*http.Cookie) (string, error) {
	if m.MockHello != nil {
		return m.MockHello(ctx, cookies)
	}
	return "", forbidden
}

func (m *MockAPI) Activity(ctx context.Context, cookies []*http.Cookie, limit int) ([]api.ActivityEvent, error) {
	if m.MockActivity != nil {
		return m.MockActivity(ctx, cookies, limit)
	}
	return nil, nil
}

type MockRefresher struct {
	Calls int
	Set   []*http.Cookie
}

func (m *MockRefresher) CheckRefreshAccessToken(ctx context.Context, cookies []*http.Cookie) []*http.Cookie {
	m.Calls++
	return m.Set
}

var forbidden = &internal_errors.ErrorWithStatusCode{Message: "Forbidden", StatusCode: http.StatusForbidden}

// --- Helpers ---

func newTestHandler(t *testing.T, apiClient *MockAPI, refresher *MockRefresher) *Handler {
	t.Helper()
	templates, err := LoadTemplates(web.FS, "templates")
	require.NoError(t, err)
	cfg := config.Public{}
	cfg.Frontend.ActivityLimit = config.DefaultActivityLimit
	return New(templates, cfg, apiClient, refresher, "<p>about body</p>")
}

func postForm(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
