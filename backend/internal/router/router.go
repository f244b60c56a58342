package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/admissible-dev/admissible-demo/backend/internal/setup"
	mw "github.com/admissible-dev/admissible-demo/shared/middleware"
	"github.com/admissible-dev/admissible-demo/shared/middleware/metrics"
	rl "github.com/admissible-dev/admissible-demo/shared/middleware/ratelimiter"
)

// New creates the gateway router.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints of that group combined
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	cfg := deps.Config

	r.Use(chimw.RequestID)
	r.Use(mw.TrustedRealIP(deps.TrustedProxies))
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware("api"))

	// setup CORS for browsers that call the gateway directly
	if len(cfg.Public.API.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Public.API.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(mw.SecurityHeadersWithCSP(cfg.Public.SecureCookies, mw.APICSP))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Sends an email, so limit hard by address and by client
			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(rl.New(1.0/10, 1, time.Hour), mw.GetEmailFromBody)) // 1 per 10 sec by email
				r.Use(mw.RateLimit(rl.New(1.0/10, 3, time.Hour), mw.GetIP))            // 1 per 10 sec by IP, burst 3
				r.Use(mw.GlobalRateLimit(rl.Rps100()))
				r.Post("/init", h.Init)
			})

			// Passcode guessing
			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(rl.New(5.0/600.0, 5, time.Hour), mw.GetEmailFromBody)) // 5 attempts per 10 minutes by email
				r.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
				r.Use(mw.GlobalRateLimit(rl.Rps100()))
				r.Post("/otp", h.Otp)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit(rl.Rps10(), mw.GetIP))
				r.Get("/refresh", h.Refresh)
				r.Get("/signout", h.Signout)
			})

			r.With(deps.Auth.NeedAuth()).Get("/status", h.Status)
		})

		// Signed-in routes
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.NeedAuth())
			r.Use(mw.RateLimit(rl.Rps10(), mw.GetEmailFromContext))
			r.Get("/hello", h.Hello)
			r.Get("/activity", h.Activity)
		})
	})

	return r
}
