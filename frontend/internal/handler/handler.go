package handler

import (
	"context"
	"html/template"
	"net/http"

	"github.com/admissible-dev/admissible-demo/shared/api"
	"github.com/admissible-dev/admissible-demo/shared/config"
)

// API is the part of the gateway the pages use.
type API interface {
	Init(ctx context.Context, email string) (string, error)
	SubmitOtp(ctx context.Context, email, otp, session string) ([]*http.Cookie, error)
	Signout(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error)
	Status(ctx context.Context, cookies []*http.Cookie) (string, error)
	Hello(ctx context.Context, cookies []*http.Cookie) (string, error)
	Activity(ctx context.Context, cookies []*http.Cookie, limit int) ([]api.ActivityEvent, error)
}

// TokenRefresher runs before calls that need a live access token.
type TokenRefresher interface {
	CheckRefreshAccessToken(ctx context.Context, cookies []*http.Cookie) []*http.Cookie
}

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public
	APIClient API
	Refresher TokenRefresher
	About     template.HTML
}

func New(templates map[string]*template.Template, publicCfg config.Public, apiClient API, refresher TokenRefresher, about template.HTML) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		APIClient: apiClient,
		Refresher: refresher,
		About:     about,
	}
}
