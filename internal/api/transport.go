package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// UserAgent is sent with every request. cmd/flightdeck sets it from the build version.
var UserAgent = "flightdeck/dev"

// TokenSource supplies the bearer token attached to every request.
// Token lifecycle belongs to the auth layer; the transport only attaches it.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource that always returns the same token
type StaticToken string

func (t StaticToken) Token() (string, error) {
	return string(t), nil
}

// RequestHook decorates an outgoing request before it is sent
type RequestHook func(req *http.Request)

// Transport holds the connection settings shared by every resource client
type Transport struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	hooks      []RequestHook
	logger     *slog.Logger
}

// Option configures a Transport
type Option func(*Transport)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(t *Transport) { t.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.httpClient.Timeout = d
		}
	}
}

// WithRequestHook appends a hook run on every outgoing request
func WithRequestHook(h RequestHook) Option {
	return func(t *Transport) { t.hooks = append(t.hooks, h) }
}

// NewTransport creates a transport for the API rooted at baseURL
func NewTransport(baseURL string, tokens TokenSource, logger *slog.Logger, opts ...Option) *Transport {
	if logger == nil {
		logger = slog.Default()
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	t := &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// do performs an authenticated JSON request and returns the response body
func (t *Transport) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	reqURL := t.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := t.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", UserAgent)
	for _, hook := range t.hooks {
		hook(req)
	}

	t.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if canceled(ctx) {
			t.logger.Debug("api request canceled", "method", method, "url", reqURL)
			return nil, ErrCanceled
		}
		t.logger.Error("api request failed", "method", method, "url", reqURL, "error", err)
		return nil, &NetworkError{Method: method, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if canceled(ctx) {
			return nil, ErrCanceled
		}
		return nil, &NetworkError{Method: method, URL: reqURL, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Error("api request error", "method", method, "url", reqURL, "status", resp.StatusCode, "body", string(data))
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// canceled reports whether ctx was canceled (as opposed to timing out)
func canceled(ctx context.Context) bool {
	if errors.Is(context.Cause(ctx), ErrCanceled) {
		return true
	}
	return errors.Is(ctx.Err(), context.Canceled)
}
