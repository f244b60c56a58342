package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/admissible-dev/admissible-demo/shared/errors"
	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), errors.StatusCode(err))
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding json response", "error", err)
	}
}

func DecodeValidate(r io.Reader, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return Validate(body)
}

func Validate(body any) error {
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing or invalid", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not json", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}
