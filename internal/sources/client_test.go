package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test-Key"); got != "secret" {
			t.Errorf("expected header X-Test-Key=secret, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"value": 42})
	}))
	defer server.Close()

	client := NewClient()
	var out struct {
		Value int `json:"value"`
	}
	err := client.GetJSON(context.Background(), server.URL, map[string]string{"X-Test-Key": "secret"}, &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Value != 42 {
		t.Errorf("expected value 42, got %d", out.Value)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer server.Close()

	client := NewClient(WithMaxRetries(3), WithRetryDelay(time.Millisecond))
	var out struct {
		OK bool `json:"ok"`
	}
	err := client.GetJSON(context.Background(), server.URL, nil, &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !out.OK {
		t.Errorf("expected ok=true")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	client := NewClient(WithMaxRetries(2), WithRetryDelay(time.Millisecond))
	var out map[string]any
	if err := client.GetJSON(context.Background(), server.URL, nil, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(WithMaxRetries(3), WithRetryDelay(time.Millisecond))
	var out map[string]any
	if err := client.GetJSON(context.Background(), server.URL, nil, &out); err == nil {
		t.Fatalf("expected an error for 401")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestClient_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithMaxRetries(1), WithRetryDelay(time.Millisecond))
	var out map[string]any
	if err := client.GetJSON(context.Background(), server.URL, nil, &out); err == nil {
		t.Fatalf("expected an error after exhausted retries")
	}
}

func TestClient_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(WithMaxRetries(3), WithRetryDelay(time.Minute))
	var out map[string]any
	err := client.GetJSON(ctx, server.URL, nil, &out)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
