package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSuccess bool
		wantMessage string
		wantPayload string
	}{
		{
			name:        "full envelope passes through",
			body:        `{"success": true, "message": "ok", "data": {"id": "1"}}`,
			wantSuccess: true,
			wantMessage: "ok",
			wantPayload: `{"id": "1"}`,
		},
		{
			name:        "failure envelope passes through",
			body:        `{"success": false, "message": "Renewal not found"}`,
			wantSuccess: false,
			wantMessage: "Renewal not found",
		},
		{
			name:        "data without success flag wraps",
			body:        `{"data": [1, 2, 3]}`,
			wantSuccess: true,
			wantPayload: `[1, 2, 3]`,
		},
		{
			name:        "bare object wraps whole body",
			body:        `{"id": "1", "service_name": "x"}`,
			wantSuccess: true,
			wantPayload: `{"id": "1", "service_name": "x"}`,
		},
		{
			name:        "bare array wraps whole body",
			body:        `[{"id": "1"}]`,
			wantSuccess: true,
			wantPayload: `[{"id": "1"}]`,
		},
		{
			name:        "non-boolean success falls back to data wrap",
			body:        `{"success": "yes", "data": 1}`,
			wantSuccess: true,
			wantPayload: `1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NormalizeEnvelope([]byte(tt.body))

			assert.Equal(t, tt.wantSuccess, env.Success)
			assert.Equal(t, tt.wantMessage, env.Message)
			if tt.wantPayload != "" {
				assert.JSONEq(t, tt.wantPayload, string(env.Payload))
			}
		})
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/v1/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "user@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"token": "jwt-abc"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.Login(context.Background(), "user@example.com", "password123"))
	assert.Equal(t, "jwt-abc", c.Tokens().Get())
}

func TestUnauthorizedClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid token"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Tokens().Set("stale")

	_, err := c.ListRenewals(context.Background(), ListOptions{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid token", apiErr.Message)
	assert.Empty(t, c.Tokens().Get())
}

func TestUpdateFallsBackToPatch(t *testing.T) {
	for _, putStatus := range []int{http.StatusMethodNotAllowed, http.StatusNotFound, http.StatusBadRequest} {
		t.Run(http.StatusText(putStatus), func(t *testing.T) {
			var methods []string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				methods = append(methods, r.Method)
				if r.Method == http.MethodPut {
					w.WriteHeader(putStatus)
					return
				}
				json.NewEncoder(w).Encode(map[string]any{
					"success": true,
					"data":    map[string]any{"id": "7", "service_name": "patched"},
				})
			}))
			defer srv.Close()

			c := New(srv.URL)
			updated, err := c.UpdateRenewal(context.Background(), "7", map[string]any{"service_name": "patched"})

			require.NoError(t, err)
			assert.Equal(t, []string{http.MethodPut, http.MethodPatch}, methods)
			assert.Equal(t, "patched", updated["service_name"])
		})
	}
}

func TestUpdateSurfacesErrorWhenBothMethodsFail(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Renewal not found"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UpdateRenewal(context.Background(), "missing", map[string]any{"notes": "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, []string{http.MethodPut, http.MethodPatch}, methods)
}

func TestListSendsOnlySetOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "domain", q.Get("type"))
		assert.Equal(t, "legacy", q.Get("shape"))
		assert.False(t, q.Has("status"))
		assert.False(t, q.Has("search"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "1", "item_name": "example.com"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	records, err := c.ListRenewals(context.Background(), ListOptions{Type: "domain", Shape: "legacy"})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "example.com", records[0]["item_name"])
}

func TestAuthorizationHeaderSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Tokens().Set("jwt-abc")
	_, err := c.GetStats(context.Background())
	require.NoError(t, err)
}

func TestGetStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/renewal/v1/statistics", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"active": 2, "expiringSoon": 1, "expired": 1, "total": 5, "totalCost": 201.95,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	stats, err := c.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 5, stats.Total)
	assert.InDelta(t, 201.95, stats.TotalCost, 0.001)
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Validation failed"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateRenewal(context.Background(), map[string]any{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "Validation failed")
}
