package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// PreferenceStore implements currency.PreferenceStore using Redis. A missing
// preference is reported as an empty code, not an error, so resolution can
// fall through to the locale default.
type PreferenceStore struct {
	client *redis.Client
	prefix string
}

// NewPreferenceStore creates a new PreferenceStore.
func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{
		client: client,
		prefix: "prefs:currency:",
	}
}

// Get returns the user's stored currency code, or "" when none is set.
func (s *PreferenceStore) Get(ctx context.Context, userID string) (string, error) {
	code, err := s.client.Get(ctx, s.prefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return code, err
}

// Set stores the user's currency code. Preferences do not expire.
func (s *PreferenceStore) Set(ctx context.Context, userID, code string) error {
	return s.client.Set(ctx, s.prefix+userID, code, 0).Err()
}
