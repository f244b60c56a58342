package setup

import (
	"fmt"
	"io/fs"
	"net/url"

	"github.com/admissible-dev/admissible-demo/frontend/internal/apiclient"
	"github.com/admissible-dev/admissible-demo/frontend/internal/handler"
	"github.com/admissible-dev/admissible-demo/frontend/internal/markdown"
	"github.com/admissible-dev/admissible-demo/shared/config"
	"github.com/admissible-dev/admissible-demo/shared/refresh"
)

const (
	tmplPath  = "templates"
	aboutPage = "content/about.md"
)

type Dependencies struct {
	Handler    *handler.Handler
	Public     config.Public
	APIBaseURL *url.URL
	Static     fs.FS
}

// SetupDependencies wires the frontend from cfg and the embedded site files.
func SetupDependencies(cfg *config.Config, site fs.FS) (*Dependencies, error) {
	apiBaseURL, err := url.Parse(cfg.Public.Frontend.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	templates, err := handler.LoadTemplates(site, tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	aboutSrc, err := fs.ReadFile(site, aboutPage)
	if err != nil {
		return nil, fmt.Errorf("failed to read about page: %w", err)
	}
	about, err := markdown.New().Render(aboutSrc)
	if err != nil {
		return nil, err
	}

	static, err := fs.Sub(site, "static")
	if err != nil {
		return nil, err
	}

	apiClient := apiclient.New(cfg.Public.Frontend.APIBaseURL, cfg.UpstreamTimeout())
	refresher := refresh.New(apiClient, cfg.RefreshThreshold())

	return &Dependencies{
		Handler:    handler.New(templates, cfg.Public, apiClient, refresher, about),
		Public:     cfg.Public,
		APIBaseURL: apiBaseURL,
		Static:     static,
	}, nil
}
