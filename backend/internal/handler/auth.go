package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/admissible-dev/admissible-demo/backend/internal/upstream"
	"github.com/admissible-dev/admissible-demo/shared/api"
	"github.com/admissible-dev/admissible-demo/shared/domain"
	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
	mw "github.com/admissible-dev/admissible-demo/shared/middleware"
	"github.com/admissible-dev/admissible-demo/shared/utils"
	"github.com/admissible-dev/admissible-demo/shared/validation"
)

// readBody buffers the request body so it can be validated and then sent
// upstream unchanged.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := validation.ReadBody(w, r, maxBodySize)
	if err != nil {
		return nil, validation.StatusError(err)
	}
	return body, nil
}

// forward proxies r to route and returns the status the caller saw.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, route string, body []byte) int {
	resp, err := h.upstream.Forward(r.Context(), route, r, body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return internal_errors.StatusCode(err)
	}
	upstream.WriteResponse(w, resp)
	return resp.StatusCode
}

func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var req api.InitRequest
	if err := utils.DecodeValidate(bytes.NewReader(body), &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	status := h.forward(w, r, upstream.RouteInit, body)
	h.activity.Record(r.Context(), req.Email, domain.ActivityInit, status)
}

func (h *Handler) Otp(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var req api.OtpRequest
	if err := utils.Decode(bytes.NewReader(body), &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	req.Otp = strings.TrimSpace(req.Otp)
	if err := utils.Validate(&req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	status := h.forward(w, r, upstream.RouteOtp, body)
	h.activity.Record(r.Context(), req.Email, domain.ActivityOtp, status)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, upstream.RouteRefresh, nil)
}

func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, upstream.RouteSignout, nil)
}

// Status echoes the identity the authorizer attached to the request.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	email, err := mw.GetEmailFromContext(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StatusResponse{Email: email})
}
