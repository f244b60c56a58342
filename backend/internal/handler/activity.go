package handler

import (
	"net/http"
	"strconv"

	"github.com/admissible-dev/admissible-demo/backend/internal/service"
	"github.com/admissible-dev/admissible-demo/shared/api"
	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
	mw "github.com/admissible-dev/admissible-demo/shared/middleware"
	"github.com/admissible-dev/admissible-demo/shared/utils"
)

const defaultActivityLimit = 10

func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	email, err := mw.GetEmailFromContext(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	limit := defaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > service.MaxActivityLimit {
			utils.WriteErrorAndStatusCode(w, &internal_errors.ErrorWithStatusCode{
				Message:    "limit must be an integer between 1 and " + strconv.Itoa(service.MaxActivityLimit),
				StatusCode: http.StatusBadRequest,
			})
			return
		}
	}

	events, err := h.activity.Recent(r.Context(), email, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := api.ActivityResponse{Events: make([]api.ActivityEvent, 0, len(events))}
	for _, ev := range events {
		resp.Events = append(resp.Events, api.ActivityEvent{
			Kind:      string(ev.Kind),
			Status:    ev.Status,
			CreatedAt: ev.CreatedAt,
		})
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
