package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/randbase/randbase/log"
)

// StatusError is an error that is rendered with a specific HTTP status code.
type StatusError struct {
	code int
	err  error
}

// Error returns the message of the wrapped error.
func (se *StatusError) Error() string {
	return se.err.Error()
}

// Unwrap returns the wrapped error.
func (se *StatusError) Unwrap() error {
	return se.err
}

// HTTPStatus returns the HTTP status code this error should be rendered with.
func (se *StatusError) HTTPStatus() int {
	return se.code
}

// ErrorWithStatus attaches an HTTP status code to the given error.
func ErrorWithStatus(err error, code int) error {
	return &StatusError{
		code: code,
		err:  err,
	}
}

// TextStatusCode returns the HTTP status code the given error should be rendered with. Errors without an attached status are treated as internal errors.
func TextStatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	return http.StatusInternalServerError
}

type errorPayload struct {
	Error string `json:"error"`
}

// writeErrorResponse renders an error as a json error payload. Server side errors are additionally logged.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := TextStatusCode(err)
	if code >= 500 {
		log.Errorf("api: request %s %s failed: %s", r.Method, r.RequestURI, err)
	}

	data, mErr := json.Marshal(&errorPayload{Error: err.Error()})
	if mErr != nil {
		http.Error(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", MimeTypeJSON+"; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(code)
	_, _ = w.Write(data)
}
