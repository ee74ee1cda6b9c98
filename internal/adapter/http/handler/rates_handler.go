package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/adapter/http/dto"
)

// RatesService defines the behavior needed by RatesHandler.
type RatesService interface {
	GetRates(ctx context.Context) (map[string]decimal.Decimal, error)
	PreferredCurrency(ctx context.Context, userID, locale string) string
	SetPreferredCurrency(ctx context.Context, userID, code string) error
}

// RatesHandler handles exchange-rate and currency-preference requests.
type RatesHandler struct {
	ratesUC RatesService
}

// NewRatesHandler creates a new RatesHandler.
func NewRatesHandler(ratesUC RatesService) *RatesHandler {
	return &RatesHandler{ratesUC: ratesUC}
}

// GetRates returns the cached exchange-rate table.
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.ratesUC.GetRates(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch exchange rates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RatesResponse{
		Base:  "USD",
		Rates: rates,
	})
}

// GetPreference resolves the user's display currency. The Accept-Language
// header stands in for the device locale when no preference is stored.
func (h *RatesHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = r.Header.Get("Accept-Language")
	}

	code := h.ratesUC.PreferredCurrency(r.Context(), requestUserID(r), locale)
	writeJSON(w, http.StatusOK, dto.CurrencyPreferenceResponse{Currency: code})
}

// PutPreference stores an explicit display currency.
func (h *RatesHandler) PutPreference(w http.ResponseWriter, r *http.Request) {
	var req dto.CurrencyPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.ratesUC.SetPreferredCurrency(r.Context(), requestUserID(r), req.Currency); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to set currency preference", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CurrencyPreferenceResponse{Currency: req.Currency})
}
