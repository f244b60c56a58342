package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/admissible-dev/admissible-demo/shared/domain"
	"github.com/admissible-dev/admissible-demo/shared/refresh"
)

const (
	signInStateCookie = "signin_state"
	signInStateMaxAge = 15 * 60
)

// setSignInState carries the email and provider session from the sign-in
// page to the passcode page.
func (h *Handler) setSignInState(w http.ResponseWriter, state domain.SignInState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     signInStateCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/signin",
		MaxAge:   signInStateMaxAge,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func getSignInState(r *http.Request) (domain.SignInState, bool) {
	var state domain.SignInState
	cookie, err := r.Cookie(signInStateCookie)
	if err != nil {
		return state, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return state, false
	}
	if err := json.Unmarshal(raw, &state); err != nil || state.Email == "" || state.Session == "" {
		return domain.SignInState{}, false
	}
	return state, true
}

func (h *Handler) clearSignInState(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     signInStateCookie,
		Value:    "",
		Path:     "/signin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// forwardCookies hands provider cookies to the browser.
func forwardCookies(w http.ResponseWriter, cookies []*http.Cookie) {
	for _, c := range cookies {
		http.SetCookie(w, c)
	}
}

// refreshedCookies runs the token refresh check, passes any new cookies to
// the browser and returns the cookies to use for the rest of the request.
func (h *Handler) refreshedCookies(w http.ResponseWriter, r *http.Request) []*http.Cookie {
	set := h.Refresher.CheckRefreshAccessToken(r.Context(), r.Cookies())
	forwardCookies(w, set)
	return refresh.Apply(r.Cookies(), set)
}
