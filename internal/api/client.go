package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Client performs CRUD requests against one REST resource at a fixed base
// path. S is the shape sent to the API and R the shape it returns.
type Client[S, R any] struct {
	transport *Transport
	basePath  string

	mu       sync.Mutex
	nextID   uint64
	inflight map[uint64]context.CancelCauseFunc
}

// NewClient creates a client for the resource at basePath (e.g. "/aircraft")
func NewClient[S, R any](t *Transport, basePath string) *Client[S, R] {
	return &Client[S, R]{
		transport: t,
		basePath:  "/" + strings.Trim(basePath, "/"),
		inflight:  make(map[uint64]context.CancelCauseFunc),
	}
}

// BasePath returns the resource path this client is bound to
func (c *Client[S, R]) BasePath() string {
	return c.basePath
}

// GetAll reads a collection
func (c *Client[S, R]) GetAll(ctx context.Context, ext ...string) ([]R, error) {
	body, err := c.request(ctx, http.MethodGet, c.path(ext...), nil)
	if err != nil {
		return nil, err
	}
	var out []R
	if err := decode(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get reads a single record
func (c *Client[S, R]) Get(ctx context.Context, ext string) (R, error) {
	var out R
	body, err := c.request(ctx, http.MethodGet, c.path(ext), nil)
	if err != nil {
		return out, err
	}
	err = decode(body, &out)
	return out, err
}

// Post creates a record
func (c *Client[S, R]) Post(ctx context.Context, payload S, ext ...string) (R, error) {
	var out R
	body, err := c.request(ctx, http.MethodPost, c.path(ext...), payload)
	if err != nil {
		return out, err
	}
	err = decode(body, &out)
	return out, err
}

// Edit updates a record
func (c *Client[S, R]) Edit(ctx context.Context, payload S, ext string) (R, error) {
	var out R
	body, err := c.request(ctx, http.MethodPut, c.path(ext), payload)
	if err != nil {
		return out, err
	}
	err = decode(body, &out)
	return out, err
}

// Delete removes a record and returns the identifying string the API
// echoes back (used for confirmation messages).
func (c *Client[S, R]) Delete(ctx context.Context, ext string) (string, error) {
	body, err := c.request(ctx, http.MethodDelete, c.path(ext), nil)
	if err != nil {
		return "", err
	}
	return identifier(body), nil
}

// CancelRequest aborts every request this client has in flight. Each of
// them fails with ErrCanceled; the client stays usable.
func (c *Client[S, R]) CancelRequest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, cancel := range c.inflight {
		cancel(ErrCanceled)
		delete(c.inflight, id)
	}
}

// PostAs creates a record and reshapes the API response with fn before
// returning it, e.g. to reduce a complete record to its cached summary.
func PostAs[S, R, T any](ctx context.Context, c *Client[S, R], payload S, fn func(R) T, ext ...string) (T, error) {
	var zero T
	out, err := c.Post(ctx, payload, ext...)
	if err != nil {
		return zero, err
	}
	return fn(out), nil
}

// EditAs updates a record and reshapes the API response with fn
func EditAs[S, R, T any](ctx context.Context, c *Client[S, R], payload S, fn func(R) T, ext string) (T, error) {
	var zero T
	out, err := c.Edit(ctx, payload, ext)
	if err != nil {
		return zero, err
	}
	return fn(out), nil
}

// DeleteReturning removes a record whose deletion changes a parent record
// server-side, and returns the updated parent in full.
func DeleteReturning[S, R, P any](ctx context.Context, c *Client[S, R], ext string) (P, error) {
	var out P
	body, err := c.request(ctx, http.MethodDelete, c.path(ext), nil)
	if err != nil {
		return out, err
	}
	err = decode(body, &out)
	return out, err
}

// PostReturning creates a record whose creation changes a parent record
// server-side, and returns the updated parent in full.
func PostReturning[S, R, P any](ctx context.Context, c *Client[S, R], payload S, ext ...string) (P, error) {
	var out P
	body, err := c.request(ctx, http.MethodPost, c.path(ext...), payload)
	if err != nil {
		return out, err
	}
	err = decode(body, &out)
	return out, err
}

// request runs one tracked request so CancelRequest can abort it
func (c *Client[S, R]) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	ctx, done := c.track(ctx)
	defer done()
	return c.transport.do(ctx, method, path, payload)
}

func (c *Client[S, R]) track(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.inflight[id] = cancel
	c.mu.Unlock()

	return ctx, func() {
		c.mu.Lock()
		delete(c.inflight, id)
		c.mu.Unlock()
		cancel(nil)
	}
}

func (c *Client[S, R]) path(ext ...string) string {
	p := c.basePath
	for _, e := range ext {
		e = strings.Trim(e, "/")
		if e != "" {
			p += "/" + e
		}
	}
	return p
}

func decode(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// identifier extracts a human-readable name from a delete response:
// a JSON string, the name-like field of an object, or the raw text.
func identifier(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	var obj map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&obj); err == nil {
		for _, k := range []string{"name", "registration", "code", "id"} {
			if v, ok := obj[k]; ok && v != nil {
				return fmt.Sprint(v)
			}
		}
		return ""
	}

	return trimmed
}
