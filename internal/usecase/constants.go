package usecase

import "time"

const (
	// DefaultPageSize is used when a caller omits a limit.
	DefaultPageSize = 20

	// MaxPageSize caps caller-supplied limits.
	MaxPageSize = 100

	// rateCacheKey is the cache slot for the exchange-rate table.
	rateCacheKey = "exchange-rates"

	// RateCacheTTL bounds staleness of cached exchange rates.
	RateCacheTTL = 5 * time.Minute

	// DepositRefreshInterval is how often displayed deposit values are
	// recomputed.
	DepositRefreshInterval = 60 * time.Second
)
