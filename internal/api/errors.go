package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mmcdole/flightdeck/internal/domain"
)

// ErrCanceled is returned by requests aborted through CancelRequest or a
// canceled context. Callers treat it as a no-op, not a failure.
var ErrCanceled = errors.New("request canceled")

// NetworkError means no response was received from the server
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{domain.ErrServerOffline, e.Err}
}

// APIError is a non-2xx response. Detail holds the raw "detail" field of the
// error body, which the API sends either as a string or as an object.
type APIError struct {
	Status int
	Detail json.RawMessage
}

func (e *APIError) Error() string {
	if msg, ok := e.DetailText(); ok {
		return fmt.Sprintf("api error %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

// DetailText returns the detail when the server sent it as a plain string
func (e *APIError) DetailText() (string, bool) {
	if len(e.Detail) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err != nil {
		return "", false
	}
	return s, s != ""
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthFailed
	default:
		return nil
	}
}

// IsCanceled reports whether err came from a deliberately aborted request
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// newAPIError builds an APIError from a response body of shape {"detail": ...}
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &APIError{Status: status}
	}
	return &APIError{Status: status, Detail: payload.Detail}
}
