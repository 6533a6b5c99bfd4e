package adapter

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/flightdeck/internal/domain"
)

func newTestFlow(input, secret string) (*AuthFlow, *bytes.Buffer) {
	out := &bytes.Buffer{}
	f := NewAuthFlow(NullLogger())
	f.in = strings.NewReader(input)
	f.out = out
	f.readSecret = func() ([]byte, error) { return []byte(secret), nil }
	return f, out
}

func TestAuthFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	testCases := []struct {
		name    string
		input   string
		baseURL string
		secret  string
		wantErr error
	}{
		{name: "prompted_url", input: server.URL + "/\n", secret: "good"},
		{name: "given_url", baseURL: server.URL, secret: " good \n"},
		{name: "rejected_token", baseURL: server.URL, secret: "bad", wantErr: domain.ErrAuthFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, out := newTestFlow(tc.input, tc.secret)

			result, err := f.Run(context.Background(), tc.baseURL)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, server.URL, result.BaseURL)
			assert.Equal(t, "good", result.Token)
			assert.Contains(t, out.String(), "Login successful!")
		})
	}
}

func TestAuthFlow_EmptyToken(t *testing.T) {
	f, _ := newTestFlow("", "")
	_, err := f.Run(context.Background(), "https://api.example.com")
	assert.ErrorContains(t, err, "token is required")
}
