// Package apitest provides an in-process API server for tests of the
// feature packages.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/flightdeck/internal/api"
)

// Token is the bearer token attached by transports from NewTransport
const Token = "test-token"

// NewTransport starts a server for handler and returns a transport bound
// to it. Both are shut down when the test ends.
func NewTransport(t testing.TB, handler http.Handler) *api.Transport {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tr := &http.Transport{}
	t.Cleanup(tr.CloseIdleConnections)

	hc := &http.Client{Transport: tr, Timeout: 5 * time.Second}
	return api.NewTransport(server.URL, api.StaticToken(Token), nil, api.WithHTTPClient(hc))
}

// WriteJSON writes v as a JSON response
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDetail writes an API error response carrying a string detail
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, map[string]string{"detail": detail})
}

// DecodeBody decodes the JSON request body into a T
func DecodeBody[T any](t testing.TB, r *http.Request) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Errorf("failed to decode request body: %v", err)
	}
	return v
}
