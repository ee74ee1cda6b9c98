package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/infrastructure/rates"
)

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"THB":35.75,"EUR":0.92,"JPY":149.50}}`))
	}))
	defer server.Close()

	client := rates.NewClient(server.URL, 5*time.Second, zerolog.Nop())

	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rates, got %d", len(got))
	}
	if !got["THB"].Equal(decimal.NewFromFloat(35.75)) {
		t.Errorf("unexpected THB rate %s", got["THB"])
	}
}

func TestClientFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"THB":35.75}}`))
	}))
	defer server.Close()

	client := rates.NewClient(server.URL, 5*time.Second, zerolog.Nop())

	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 rate, got %d", len(got))
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClientFetch_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := rates.NewClient(server.URL, 5*time.Second, zerolog.Nop())

	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for forbidden response")
	}
	if calls.Load() != 1 {
		t.Errorf("expected no retries for a 4xx response, got %d attempts", calls.Load())
	}
}

func TestClientFetch_EmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{}}`))
	}))
	defer server.Close()

	client := rates.NewClient(server.URL, 5*time.Second, zerolog.Nop())

	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for empty rate table")
	}
}
