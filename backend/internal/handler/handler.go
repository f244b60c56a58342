package handler

import (
	"context"
	"net/http"

	"github.com/admissible-dev/admissible-demo/backend/internal/service"
	"github.com/admissible-dev/admissible-demo/backend/internal/upstream"
	"github.com/admissible-dev/admissible-demo/shared/config"
)

// maxBodySize bounds auth request bodies; the largest is an otp submission.
const maxBodySize = 1 << 14

type Upstream interface {
	Forward(ctx context.Context, route string, r *http.Request, body []byte) (*upstream.Response, error)
}

// HealthChecker is used by the readiness probe.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	upstream Upstream
	activity service.ActivityService
	health   HealthChecker
	cfg      *config.Config
}

func New(upstream Upstream, activity service.ActivityService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		upstream: upstream,
		activity: activity,
		health:   health,
		cfg:      cfg,
	}
}
