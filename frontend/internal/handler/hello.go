package handler

import (
	"net/http"

	frontend_domain "github.com/admissible-dev/admissible-demo/frontend/internal/domain"
	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
	"github.com/admissible-dev/admissible-demo/shared/logger"
)

func (h *Handler) HelloGetHandler(w http.ResponseWriter, r *http.Request) {
	cookies := h.refreshedCookies(w, r)

	var page frontend_domain.HelloPage
	msg, err := h.APIClient.Hello(r.Context(), cookies)
	switch {
	case err == nil:
		page.Message = msg
	case internal_errors.StatusCode(err) == http.StatusForbidden:
		page.Forbidden = true
	default:
		logger.Log.Error("fetching hello message", "error", err)
		page.Error = true
	}

	h.renderTemplate(w, r, "hello.html", page)
}
