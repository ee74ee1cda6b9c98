package usecase

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/currency"
	"github.com/novabank/docgen/internal/domain"
)

// RatesUseCase serves the exchange-rate table and currency preferences.
// The cached table is read-mostly and last-write-wins; a stale entry is
// bounded by RateCacheTTL.
type RatesUseCase struct {
	source   RateSource
	cache    Cache
	resolver *currency.Resolver
	prefs    currency.PreferenceStore
	logger   zerolog.Logger
}

// NewRatesUseCase creates a new RatesUseCase. cache may be nil, in which
// case every call hits the upstream source.
func NewRatesUseCase(source RateSource, cache Cache, resolver *currency.Resolver, prefs currency.PreferenceStore, logger zerolog.Logger) *RatesUseCase {
	return &RatesUseCase{
		source:   source,
		cache:    cache,
		resolver: resolver,
		prefs:    prefs,
		logger:   logger,
	}
}

// GetRates returns the rate table (units of target per 1 USD), serving from
// cache when fresh.
func (uc *RatesUseCase) GetRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, rateCacheKey); err == nil && cached != "" {
			var rates map[string]decimal.Decimal
			if err := json.Unmarshal([]byte(cached), &rates); err == nil {
				return rates, nil
			}
			// Corrupt cache entries are dropped, not served.
			_ = uc.cache.Delete(ctx, rateCacheKey)
		}
	}

	rates, err := uc.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if blob, err := json.Marshal(rates); err == nil {
			if err := uc.cache.Set(ctx, rateCacheKey, string(blob), RateCacheTTL); err != nil {
				uc.logger.Warn().Err(err).Msg("failed to cache exchange rates")
			}
		}
	}

	return rates, nil
}

// Convert converts a USD base amount into the target currency.
func (uc *RatesUseCase) Convert(ctx context.Context, amountInBase decimal.Decimal, target string) (decimal.Decimal, error) {
	rates, err := uc.GetRates(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := rates[target]
	if !ok {
		return decimal.Zero, domain.ErrRateUnavailable
	}
	return currency.Convert(amountInBase, rate), nil
}

// PreferredCurrency resolves the user's display currency.
func (uc *RatesUseCase) PreferredCurrency(ctx context.Context, userID, locale string) string {
	return uc.resolver.Preferred(ctx, userID, locale)
}

// SetPreferredCurrency stores an explicit preference.
func (uc *RatesUseCase) SetPreferredCurrency(ctx context.Context, userID, code string) error {
	if err := domain.ValidateCurrency(code); err != nil {
		return err
	}
	return uc.prefs.Set(ctx, userID, code)
}
