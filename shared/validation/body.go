package validation

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	internal_errors "github.com/admissible-dev/admissible-demo/shared/errors"
)

// ErrPayloadTooLarge is returned when the request body exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// MaxFormSize bounds the sign-in forms: an email or passcode plus the CSRF token.
const MaxFormSize = 1 << 14

func limitError(err error, maxSize int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", ErrPayloadTooLarge, maxSize)
	}
	return err
}

// ReadBody reads at most maxSize bytes of the request body. When the limit is
// hit the server stops reading and the connection is closed after the reply.
func ReadBody(w http.ResponseWriter, r *http.Request, maxSize int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSize))
	if err != nil {
		return nil, limitError(err, maxSize)
	}
	return body, nil
}

// ParseForm parses an url-encoded form of at most maxSize bytes.
func ParseForm(w http.ResponseWriter, r *http.Request, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseForm(); err != nil {
		return limitError(err, maxSize)
	}
	return nil
}

// StatusError maps body errors to a response status: 413 for oversized
// bodies, 400 for anything else.
func StatusError(err error) error {
	if errors.Is(err, ErrPayloadTooLarge) {
		return &internal_errors.ErrorWithStatusCode{Message: "Request body too large", StatusCode: http.StatusRequestEntityTooLarge}
	}
	return &internal_errors.ErrorWithStatusCode{Message: "Invalid request body", StatusCode: http.StatusBadRequest}
}
