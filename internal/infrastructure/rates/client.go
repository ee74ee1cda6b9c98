// Package rates fetches the exchange-rate table from the upstream rates
// service.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const maxResponseBytes = 1 << 20

// Client implements usecase.RateSource against an HTTP rates endpoint.
// Transient failures are retried with exponential backoff.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	logger     zerolog.Logger
}

// NewClient creates a rates client for the given endpoint URL.
func NewClient(url string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 3,
		logger:     logger,
	}
}

// ratesResponse is the upstream payload. Rates are quoted as units of the
// target currency per 1 USD.
type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Fetch retrieves the current rate table.
func (c *Client) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 15 * time.Second

	var rates map[string]decimal.Decimal
	retryCount := 0

	err := backoff.Retry(func() error {
		var err error
		rates, err = c.fetchOnce(ctx)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > c.maxRetries {
			return backoff.Permanent(err)
		}

		c.logger.Warn().Err(err).Int("retry", retryCount).Msg("rate fetch failed, retrying")
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching exchange rates: %w", err)
	}

	return rates, nil
}

func (c *Client) fetchOnce(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	var payload ratesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding rates payload: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates payload contained no rates")
	}

	return payload.Rates, nil
}

// statusError marks non-200 upstream responses so retry policy can key off
// the status code.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.code)
}

// isRetryable reports whether the failure is worth retrying. Server errors
// and transport failures are; client errors and malformed payloads are not.
func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	var syntaxErr *json.SyntaxError
	return !errors.As(err, &syntaxErr)
}
