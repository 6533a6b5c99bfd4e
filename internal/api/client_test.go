package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mmcdole/flightdeck/internal/domain"
)

type planeData struct {
	Registration string `json:"registration"`
}

type plane struct {
	ID           domain.RecordID `json:"id"`
	Registration string          `json:"registration"`
	Hours        float64         `json:"hours"`
}

type planeSummary struct {
	Registration string
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client[planeData, plane] {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tr := &http.Transport{}
	t.Cleanup(tr.CloseIdleConnections)

	opts = append([]Option{WithHTTPClient(&http.Client{Transport: tr, Timeout: 5 * time.Second})}, opts...)
	transport := NewTransport(server.URL, StaticToken("test-token"), nil, opts...)
	return NewClient[planeData, plane](transport, "/aircraft/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_GetAll(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/aircraft", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "registration": "C-GABC"},
			{"id": 2, "registration": "C-FXYZ"},
		})
	})

	planes, err := client.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, planes, 2)
	assert.Equal(t, domain.Saved(1), planes[0].ID)
	assert.Equal(t, "C-FXYZ", planes[1].Registration)
}

func TestClient_PathExtensions(t *testing.T) {
	var got []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": 3})
	})

	ctx := context.Background()
	_, err := client.Get(ctx, "/3")
	require.NoError(t, err)
	_, err = client.Post(ctx, planeData{}, "/performance-profile/", "12", "4")
	require.NoError(t, err)

	assert.Equal(t, []string{"/aircraft/3", "/aircraft/performance-profile/12/4"}, got)
}

func TestClient_PostSendsBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in planeData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, map[string]any{"id": 7, "registration": in.Registration, "hours": 1200.5})
	})

	out, err := client.Post(context.Background(), planeData{Registration: "C-GNEW"})
	require.NoError(t, err)
	assert.Equal(t, plane{ID: domain.Saved(7), Registration: "C-GNEW", Hours: 1200.5}, out)
}

func TestPostAs_ReshapesResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 7, "registration": "C-GNEW", "hours": 10})
	})

	summary, err := PostAs(context.Background(), client, planeData{Registration: "C-GNEW"}, func(p plane) planeSummary {
		return planeSummary{Registration: p.Registration}
	})
	require.NoError(t, err)
	assert.Equal(t, planeSummary{Registration: "C-GNEW"}, summary)
}

func TestEditAs_UsesPut(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/aircraft/7", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": 7, "registration": "C-GOLD"})
	})

	reg, err := EditAs(context.Background(), client, planeData{Registration: "C-GOLD"}, func(p plane) string {
		return p.Registration
	}, "7")
	require.NoError(t, err)
	assert.Equal(t, "C-GOLD", reg)
}

func TestClient_Delete(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "json_string", body: `"C-GABC"`, expected: "C-GABC"},
		{name: "object_with_name", body: `{"name":"Cruise profile","id":4}`, expected: "Cruise profile"},
		{name: "object_with_id", body: `{"id":4}`, expected: "4"},
		{name: "object_with_large_id", body: `{"id":1234567}`, expected: "1234567"},
		{name: "object_with_registration", body: `{"registration":"C-GXYZ","id":1234567}`, expected: "C-GXYZ"},
		{name: "raw_text", body: "deleted\n", expected: "deleted"},
		{name: "empty", body: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				_, _ = io.WriteString(w, tc.body)
			})

			id, err := client.Delete(context.Background(), "4")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestDeleteReturning_DecodesParent(t *testing.T) {
	type route struct {
		ID   domain.RecordID `json:"id"`
		Legs []int           `json:"legs"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "legs": []int{1, 3}})
	})

	parent, err := DeleteReturning[planeData, plane, route](context.Background(), client, "/leg/2")
	require.NoError(t, err)
	assert.Equal(t, route{ID: domain.Saved(9), Legs: []int{1, 3}}, parent)
}

func TestClient_APIErrors(t *testing.T) {
	testCases := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		hasDetail  bool
		wantIs     error
	}{
		{name: "string_detail", status: http.StatusBadRequest, body: `{"detail":"Registration already exists"}`, wantDetail: "Registration already exists", hasDetail: true},
		{name: "string_detail_verbatim", status: http.StatusConflict, body: `{"detail":"  Flight has legs\n"}`, wantDetail: "  Flight has legs\n", hasDetail: true},
		{name: "empty_string_detail", status: http.StatusBadRequest, body: `{"detail":""}`},
		{name: "object_detail", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["body","registration"],"msg":"field required"}]}`},
		{name: "not_found", status: http.StatusNotFound, body: `{"detail":"Aircraft not found"}`, wantDetail: "Aircraft not found", hasDetail: true, wantIs: domain.ErrNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `not json`, wantIs: domain.ErrAuthFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := client.GetAll(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)

			detail, ok := apiErr.DetailText()
			assert.Equal(t, tc.hasDetail, ok)
			assert.Equal(t, tc.wantDetail, detail)

			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
			assert.False(t, IsCanceled(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient[planeData, plane](NewTransport(url, nil, nil), "/aircraft")
	_, err := client.GetAll(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.False(t, IsCanceled(err))
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetAll(ctx)
	require.Error(t, err)
	assert.False(t, IsCanceled(err))
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestClient_CancelRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	entered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-r.Context().Done()
	}))
	defer server.Close()

	tr := &http.Transport{}
	defer tr.CloseIdleConnections()

	transport := NewTransport(server.URL, StaticToken("test-token"), nil, WithHTTPClient(&http.Client{Transport: tr}))
	client := NewClient[planeData, plane](transport, "/aircraft")

	errCh := make(chan error, 1)
	go func() {
		_, err := client.GetAll(context.Background())
		errCh <- err
	}()

	<-entered
	client.CancelRequest()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrCanceled)
		assert.True(t, IsCanceled(err))
	case <-time.After(5 * time.Second):
		t.Fatal("request was not canceled")
	}
}

func TestClient_UsableAfterCancel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1}})
	})

	client.CancelRequest()

	planes, err := client.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, planes, 1)
}

func TestClient_CallerCancelIsCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetAll(ctx)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestTransport_RequestHook(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.Header.Get("X-Request-Source"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		writeJSON(w, http.StatusOK, []map[string]any{})
	}, WithRequestHook(func(req *http.Request) {
		req.Header.Set("X-Request-Source", "abc")
	}))

	_, err := client.GetAll(context.Background())
	require.NoError(t, err)
}
