// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/vehicle"
)

const testKey = "anon-test-key"

// newTestClient returns a client pointed at srv with fast retries and no pacing.
func newTestClient(srv *httptest.Server) *Client {
	return New(srv.URL, testKey).
		WithRateLimit(0).
		WithBackoff(time.Millisecond, 5*time.Millisecond)
}

// =============================================================================
// REQUEST SHAPE
// =============================================================================

func TestSearch_RequestShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/functions/v1/aicarsearch", r.URL.Path)
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		assert.Equal(t, testKey, r.Header.Get("apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"action":"search","success":true,"ai_response":"ok","vehicles":[{"id":4},{"id":9}]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	res, err := c.Search(context.Background(), "a red SUV", locale.English, &vehicle.Context{LastSearchResults: []int64{1, 2}})
	require.NoError(t, err)

	assert.Equal(t, "ok", res.AIResponse)
	assert.Equal(t, []int64{4, 9}, vehicle.IDs(res.Vehicles))
	assert.Equal(t, "a red SUV", got["message"])
	assert.Equal(t, "en", got["language"])
	assert.Equal(t, map[string]any{"last_search_results": []any{1.0, 2.0}}, got["conversation_context"])
}

func TestSearch_OmitsEmptyContext(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		raw = string(body)
		io.WriteString(w, `{"action":"search","success":true}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "ciao", locale.Language("xx"), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"ciao","language":"it"}`, raw)
}

func TestDetails_RequestShape(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		raw = string(body)
		io.WriteString(w, `{"action":"details","success":true,"vehicle":{"id":42,"brand":"Fiat","model":"500"}}`)
	}))
	defer srv.Close()

	v, err := newTestClient(srv).Details(context.Background(), 42)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"details","vehicle_id":42}`, raw)
	assert.Equal(t, int64(42), v.ID)
	assert.Equal(t, "Fiat 500", v.Title())
}

func TestWithFunction(t *testing.T) {
	c := New("https://example.supabase.co/", testKey).WithFunction("/carsearch-v2/")
	assert.Equal(t, "https://example.supabase.co/functions/v1/carsearch-v2", c.Endpoint())

	c.WithFunction("  ")
	assert.Equal(t, "https://example.supabase.co/functions/v1/carsearch-v2", c.Endpoint())
}

// =============================================================================
// FAILURE PATHS
// =============================================================================

func TestNotConfigured(t *testing.T) {
	c := New("", "")
	assert.False(t, c.IsConfigured())

	_, err := c.Search(context.Background(), "x", locale.Italian, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New("https://example.supabase.co", " ").Details(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSuccessFalse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		details bool
		wantMsg string
	}{
		{"search with message", `{"success":false,"error":"quota exceeded"}`, false, "quota exceeded"},
		{"search blank", `{"success":false}`, false, "Search failed"},
		{"details with message", `{"success":false,"error":"not found"}`, true, "not found"},
		{"details blank", `{"success":false,"error":""}`, true, "Failed to get vehicle details"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := newTestClient(srv)
			var err error
			if tt.details {
				_, err = c.Details(context.Background(), 7)
			} else {
				_, err = c.Search(context.Background(), "x", locale.Italian, nil)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSearchFailed)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDetails_MissingVehicle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"action":"details","success":true}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Details(context.Background(), 3)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>gateway</html>`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "x", locale.Italian, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Invalid JWT"}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrAuthFailed)
			assert.Contains(t, err.Error(), "Invalid JWT")
		}},
		{"bad request", http.StatusBadRequest, `{"error":"message is required"}`, func(t *testing.T, err error) {
			var fe *FunctionError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, http.StatusBadRequest, fe.Status)
			assert.Equal(t, "message is required", fe.Message)
		}},
		{"plain text", http.StatusNotFound, "Function not found", func(t *testing.T, err error) {
			var fe *FunctionError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "Function not found", fe.Message)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(srv).Search(context.Background(), "x", locale.Italian, nil)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
		})
	}
}

func TestResponseSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"ai_response":"`+strings.Repeat("a", 256)+`"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).WithMaxResponseSize(64).Search(context.Background(), "x", locale.Italian, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum size")
}

// =============================================================================
// RETRIES
// =============================================================================

func TestRetry_ServerErrorThenSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `{"action":"search","success":true}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "x", locale.Italian, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetry_RateLimitedExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).WithMaxRetries(2).Search(context.Background(), "x", locale.Italian, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetry_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv).Search(ctx, "x", locale.Italian, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoff(t *testing.T) {
	c := New("u", "k")
	assert.Equal(t, 500*time.Millisecond, c.calculateBackoff(1))
	assert.Equal(t, time.Second, c.calculateBackoff(2))
	assert.Equal(t, 2*time.Second, c.calculateBackoff(3))
	assert.Equal(t, 10*time.Second, c.calculateBackoff(10))
}

func TestIsRetryable(t *testing.T) {
	c := New("u", "k")
	assert.True(t, c.isRetryable(ErrRateLimited))
	assert.True(t, c.isRetryable(&FunctionError{Status: 503}))
	assert.False(t, c.isRetryable(&FunctionError{Status: 404}))
	assert.False(t, c.isRetryable(context.DeadlineExceeded))
	assert.False(t, c.isRetryable(ErrSearchFailed))
}
