package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeGetHandler(t *testing.T) {
	t.Run("not signed in", func(t *testing.T) {
		refresher := &MockRefresher{}
		h := newTestHandler(t, &MockAPI{}, refresher)

		rr := httptest.NewRecorder()
		h.HomeGetHandler(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "You are not signed in")
		assert.Contains(t, rr.Body.String(), `href="/signin"`)
		assert.Equal(t, 1, refresher.Calls)
	})

	t.Run("signed in with activity", func(t *testing.T) {
		var activityLimit int
		apiClient := &MockAPI{
			MockStatus: func(ctx context.Context, cookies []*http.Cookie) (string, error) {
				return "a@example.com", nil
			},
			MockActivity: func(ctx context.Context, cookies []*http.Cookie, limit int) ([]api.ActivityEvent, error) {
				activityLimit = limit
				return []api.ActivityEvent{{Kind: "hello", Status: 200, CreatedAt: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)}}, nil
			},
		}
		h := newTestHandler(t, apiClient, &MockRefresher{})

		rr := httptest.NewRecorder()
		h.HomeGetHandler(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		body := rr.Body.String()
		assert.Contains(t, body, "You are signed in as <strong>a@example.com</strong>")
		assert.Contains(t, body, `action="/signout"`)
		assert.Contains(t, body, "2026-10-19 09:30:00 UTC hello")
		assert.Equal(t, 5, activityLimit)
	})

	t.Run("status failure", func(t *testing.T) {
		apiClient := &MockAPI{MockStatus: func(ctx context.Context, cookies []*http.Cookie) (string, error) {
			return "", errors.New("backend unavailable")
		}}
		h := newTestHandler(t, apiClient, &MockRefresher{})

		rr := httptest.NewRecorder()
		h.HomeGetHandler(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Contains(t, rr.Body.String(), "Error fetching your sign-in status")
		assert.NotContains(t, rr.Body.String(), "You are not signed in")
	})

	t.Run("refreshed cookies are used and forwarded", func(t *testing.T) {
		var sent []*http.Cookie
		apiClient := &MockAPI{MockStatus: func(ctx context.Context, cookies []*http.Cookie) (string, error) {
			sent = cookies
			return "a@example.com", nil
		}}
		refresher := &MockRefresher{Set: []*http.Cookie{{Name: "accessToken", Value: "new"}}}
		h := newTestHandler(t, apiClient, refresher)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "old"})
		rr := httptest.NewRecorder()
		h.HomeGetHandler(rr, req)

		require.NotNil(t, cookieByName(sent, "accessToken"))
		assert.Equal(t, "new", cookieByName(sent, "accessToken").Value)
		require.NotNil(t, cookieByName(rr.Result().Cookies(), "accessToken"))
	})
}

func TestSignoutPostHandler(t *testing.T) {
	apiClient := &MockAPI{MockSignout: func(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error) {
		return []*http.Cookie{{Name: "accessToken", Value: "", MaxAge: -1}}, nil
	}}
	h := newTestHandler(t, apiClient, &MockRefresher{})

	rr := httptest.NewRecorder()
	h.SignoutPostHandler(rr, httptest.NewRequest(http.MethodPost, "/signout", nil))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.NotNil(t, cookieByName(rr.Result().Cookies(), "accessToken"))
}
