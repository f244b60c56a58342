package handler

import (
	"net/http"

	"github.com/admissible-dev/admissible-demo/shared/domain"
	mw "github.com/admissible-dev/admissible-demo/shared/middleware"
)

// Hello is the protected greeting. It only runs for requests the authorizer allowed.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.cfg.Public.API.HelloMessage))

	if email, err := mw.GetEmailFromContext(r); err == nil {
		h.activity.Record(r.Context(), email, domain.ActivityHello, http.StatusOK)
	}
}
