package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admissible-dev/admissible-demo/backend/internal/upstream"
	"github.com/admissible-dev/admissible-demo/shared/config"
	"github.com/admissible-dev/admissible-demo/shared/domain"
	mw "github.com/admissible-dev/admissible-demo/shared/middleware"
)

// --- Mocks ---

type MockUpstream struct {
	Calls       []string
	Bodies      [][]byte
	MockForward func(ctx context.Context, route string, r *http.Request, body []byte) (*upstream.Response, error)
}

func (m *MockUpstream) Forward(ctx context.Context, route string, r *http.Request, body []byte) (*upstream.Response, error) {
	m.Calls = append(m.Calls, route)
	m.Bodies = append(m.Bodies, body)
	if m.MockForward != nil {
		return m.MockForward(ctx, route, r, body)
	}
	return &upstream.Response{StatusCode: http.StatusOK, Header: http.Header{}}, nil
}

type recorded struct {
	Email  domain.Email
	Kind   domain.ActivityKind
	Status int
}

type MockActivityService struct {
	Recorded   []recorded
	MockRecent func(ctx context.Context, email domain.Email, limit int) ([]domain.ActivityEvent, error)
}

func (m *MockActivityService) Record(ctx context.Context, email domain.Email, kind domain.ActivityKind, status int) {
	m.Recorded = append(m.Recorded, recorded{email, kind, status})
}

func (m *MockActivityService) Recent(ctx context.Context, email domain.Email, limit int) ([]domain.ActivityEvent, error) {
	if m.MockRecent != nil {
		return m.MockRecent(ctx, email, limit)
	}
	return nil, nil
}

// --- Helpers ---

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func withIdentity(r *http.Request, email string) *http.Request {
	ctx := context.WithValue(r.Context(), mw.IdentityKey, &domain.Identity{Email: email})
	return r.WithContext(ctx)
}

func newTestHandler(up *MockUpstream, activity *MockActivityService) *Handler {
	cfg := &config.Config{}
	cfg.Public.API.HelloMessage = config.DefaultHelloMessage
	return New(up, activity, &MockHealthChecker{}, cfg)
}
