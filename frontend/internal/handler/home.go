package handler

import (
	"net/http"

	frontend_domain "github.com/admissible-dev/admissible-demo/frontend/internal/domain"
	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
	"github.com/admissible-dev/admissible-demo/shared/logger"
)

// HomeGetHandler shows who is signed in.
func (h *Handler) HomeGetHandler(w http.ResponseWriter, r *http.Request) {
	cookies := h.refreshedCookies(w, r)

	var page frontend_domain.HomePage
	email, err := h.APIClient.Status(r.Context(), cookies)
	switch {
	case err == nil:
		page.SignedIn = true
		page.Email = email
		page.Activity, err = h.APIClient.Activity(r.Context(), cookies, h.Public.Frontend.ActivityLimit)
		if err != nil {
			logger.Log.Warn("fetching activity", "error", err)
		}
	case internal_errors.StatusCode(err) == http.StatusForbidden:
		// not signed in
	default:
		logger.Log.Error("fetching sign-in status", "error", err)
		page.Error = true
	}

	h.renderTemplate(w, r, "home.html", page)
}

// SignoutPostHandler ends the provider session and goes home.
func (h *Handler) SignoutPostHandler(w http.ResponseWriter, r *http.Request) {
	cookies, err := h.APIClient.Signout(r.Context(), r.Cookies())
	if err != nil {
		logger.Log.Error("signing out", "error", err)
	}
	forwardCookies(w, cookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
