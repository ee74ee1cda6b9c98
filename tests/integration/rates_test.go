package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/adapter/http/dto"
	"github.com/novabank/docgen/tests/testutil"
)

func TestRatesAndPreferences(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestServer(t, testDB)

	user := testDB.CreateTestUser(ctx, "kofi@example.com", "Kofi Mensah", "secret-pw")
	userQS := "?user_id=" + user.ID

	t.Run("exchange rates from source", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/exchange-rates", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.RatesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Base != "USD" {
			t.Errorf("expected USD base, got %q", resp.Base)
		}
		if !resp.Rates["THB"].Equal(decimal.NewFromFloat(35.75)) {
			t.Errorf("unexpected THB rate %s", resp.Rates["THB"])
		}
	})

	t.Run("set and resolve currency preference", func(t *testing.T) {
		body, _ := json.Marshal(dto.CurrencyPreferenceRequest{Currency: "THB"})
		r := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/currency"+userQS, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		r = httptest.NewRequest(http.MethodGet, "/api/v1/preferences/currency"+userQS+"&locale=de-DE", nil)
		w = httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.CurrencyPreferenceResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		// The stored preference wins over the locale default.
		if resp.Currency != "THB" {
			t.Errorf("expected THB, got %q", resp.Currency)
		}
	})

	t.Run("invalid preference returns 400", func(t *testing.T) {
		body, _ := json.Marshal(dto.CurrencyPreferenceRequest{Currency: "not-a-code"})
		r := httptest.NewRequest(http.MethodPut, "/api/v1/preferences/currency"+userQS, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("login issues a token", func(t *testing.T) {
		body, _ := json.Marshal(dto.LoginRequest{Email: "kofi@example.com", Password: "secret-pw"})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		var resp dto.LoginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token")
		}
		if resp.User.Email != "kofi@example.com" {
			t.Errorf("unexpected user %q", resp.User.Email)
		}
	})

	t.Run("login with wrong password returns 401", func(t *testing.T) {
		body, _ := json.Marshal(dto.LoginRequest{Email: "kofi@example.com", Password: "wrong"})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})
}
