package handler

import (
	"net/http"

	frontend_domain "github.com/admissible-dev/admissible-demo/frontend/internal/domain"
)

func (h *Handler) AboutGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "about.html", frontend_domain.AboutPage{Body: h.About})
}
