package setup

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/admissible-dev/admissible-demo/backend/internal/handler"
	"github.com/admissible-dev/admissible-demo/backend/internal/service"
	"github.com/admissible-dev/admissible-demo/backend/internal/storage/memory"
	"github.com/admissible-dev/admissible-demo/backend/internal/storage/pg"
	"github.com/admissible-dev/admissible-demo/backend/internal/storage/sqlite"
	"github.com/admissible-dev/admissible-demo/backend/internal/upstream"
	"github.com/admissible-dev/admissible-demo/shared/config"
	mw "github.com/admissible-dev/admissible-demo/shared/middleware"
)

// ActivityStore is a storage backend that owns a connection.
type ActivityStore interface {
	service.ActivityStorage
	service.RetentionStorage
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config   *config.Config
	Storage  ActivityStore
	Upstream *upstream.Client
	Handler  *handler.Handler
	Auth     *mw.Auth
	Sweeper  *service.ActivitySweeper

	TrustedProxies []netip.Prefix
}

// NewActivityStore opens the backend named by activity.driver.
func NewActivityStore(cfg *config.Config) (ActivityStore, error) {
	switch cfg.Public.Activity.Driver {
	case "", "memory":
		return memory.New(0), nil
	case "sqlite":
		return sqlite.Open(cfg.Public.Activity.Path)
	case "postgres":
		return pg.New(cfg)
	default:
		return nil, fmt.Errorf("unknown activity driver %q", cfg.Public.Activity.Driver)
	}
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	trusted, err := mw.ParseTrustedProxies(cfg.Public.API.TrustedProxies)
	if err != nil {
		return nil, err
	}

	storage, err := NewActivityStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("activity store: %w", err)
	}
	if err := storage.Ping(context.Background()); err != nil {
		storage.Cleanup()
		return nil, fmt.Errorf("activity store: %w", err)
	}

	activity, err := service.NewActivity(storage, cfg.Private.ActivityKey)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}
	client := upstream.New(cfg.Public.Upstream.BaseURL, cfg.UpstreamTimeout())

	return &Dependencies{
		Config:   cfg,
		Storage:  storage,
		Upstream: client,
		Handler:  handler.New(client, activity, activity, cfg),
		Auth:     mw.NewAuth(client),
		Sweeper:  service.NewActivitySweeper(storage, cfg.Public.Activity.Retention),

		TrustedProxies: trusted,
	}, nil
}
