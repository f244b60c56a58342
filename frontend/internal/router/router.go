package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/admissible-dev/admissible-demo/frontend/internal/apiclient"
	frontend_mw "github.com/admissible-dev/admissible-demo/frontend/internal/middleware"
	"github.com/admissible-dev/admissible-demo/frontend/internal/setup"
	mw "github.com/admissible-dev/admissible-demo/shared/middleware"
	"github.com/admissible-dev/admissible-demo/shared/middleware/metrics"
	rl "github.com/admissible-dev/admissible-demo/shared/middleware/ratelimiter"
)

func SetupRouter(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()
	h := deps.Handler

	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware("frontend"))
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, mw.FrontendCSP))

	r.Handle("/api/*", NewAPIProxy(deps.APIBaseURL))
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler(deps.Static)))

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(apiclient.ForwardClientIP)
		r.Use(frontend_mw.GenerateCSRFToken(frontend_mw.CSRFConfig{SecureCookies: deps.Public.SecureCookies}))
		r.Use(frontend_mw.ValidateCSRFToken())

		r.Get("/", h.HomeGetHandler)
		r.Get("/hello", h.HelloGetHandler)
		r.Get("/about", h.AboutGetHandler)
		r.Post("/signout", h.SignoutPostHandler)

		r.Get("/signin", h.SigninGetHandler)
		r.With(mw.RateLimit(rl.New(1.0/10, 3, time.Hour), mw.GetIP)).Post("/signin", h.SigninPostHandler)
		r.Get("/signin/otp", h.OtpGetHandler)
		r.With(mw.RateLimit(rl.OnceInSecond(), mw.GetIP)).Post("/signin/otp", h.OtpPostHandler)
	})

	return r
}

func staticHandler(static fs.FS) http.Handler {
	files := http.FileServer(http.FS(static))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
