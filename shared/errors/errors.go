package errors

import (
	"errors"
	"net/http"
)

var ErrNotFound = errors.New("not found")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// StatusCode returns the status carried by err, or 500.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
