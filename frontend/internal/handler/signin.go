package handler

import (
	"net/http"
	"strings"

	frontend_domain "github.com/admissible-dev/admissible-demo/frontend/internal/domain"
	"github.com/admissible-dev/admissible-demo/shared/api"
	"github.com/admissible-dev/admissible-demo/shared/domain"
	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/admissible-dev/admissible-demo/shared/utils"
)

const (
	maxEmailLen = 100
	maxOtpLen   = 20

	errSendingEmail  = "There was an error sending the email."
	errSubmittingOtp = "There was an error submitting the passcode."
)

func (h *Handler) SigninGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signin.html", frontend_domain.SignInPage{MaxEmailLen: maxEmailLen})
}

func (h *Handler) SigninPostHandler(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	page := frontend_domain.SignInPage{Email: email, MaxEmailLen: maxEmailLen}

	if err := utils.Validate(&api.InitRequest{Email: email}); err != nil {
		h.renderTemplateWithError(w, r, "signin.html", page, errSendingEmail)
		return
	}

	session, err := h.APIClient.Init(r.Context(), email)
	if err != nil {
		logger.Log.Warn("starting sign-in", "error", err)
		h.renderTemplateWithError(w, r, "signin.html", page, errSendingEmail)
		return
	}

	if err := h.setSignInState(w, domain.SignInState{Email: email, Session: session}); err != nil {
		logger.Log.Error("storing sign-in state", "error", err)
		h.renderTemplateWithError(w, r, "signin.html", page, errSendingEmail)
		return
	}
	http.Redirect(w, r, "/signin/otp", http.StatusSeeOther)
}

func (h *Handler) OtpGetHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := getSignInState(r)
	if !ok {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	h.renderTemplate(w, r, "otp.html", frontend_domain.OtpPage{Email: state.Email, MaxOtpLen: maxOtpLen})
}

func (h *Handler) OtpPostHandler(w http.ResponseWriter, r *http.Request) {
	state, ok := getSignInState(r)
	if !ok {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	page := frontend_domain.OtpPage{Email: state.Email, MaxOtpLen: maxOtpLen}

	otp := strings.TrimSpace(r.PostFormValue("otp"))
	if otp == "" || len(otp) > maxOtpLen {
		h.renderTemplateWithError(w, r, "otp.html", page, errSubmittingOtp)
		return
	}

	cookies, err := h.APIClient.SubmitOtp(r.Context(), state.Email, otp, state.Session)
	if err != nil {
		logger.Log.Warn("submitting passcode", "error", err)
		h.renderTemplateWithError(w, r, "otp.html", page, errSubmittingOtp)
		return
	}

	forwardCookies(w, cookies)
	h.clearSignInState(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
