package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novabank/docgen/internal/domain"
)

// KYCRepository implements usecase.KYCRepository. The step sequence is
// stored as a JSONB blob; its shape is owned by the domain package.
type KYCRepository struct {
	pool *pgxpool.Pool
}

// NewKYCRepository creates a new KYCRepository.
func NewKYCRepository(pool *pgxpool.Pool) *KYCRepository {
	return &KYCRepository{pool: pool}
}

// GetByUser retrieves a user's KYC profile.
func (r *KYCRepository) GetByUser(ctx context.Context, userID string) (*domain.KYCProfile, error) {
	query := `
		SELECT id, user_id, steps, current_step, submitted, created_at, updated_at
		FROM kyc_profiles
		WHERE user_id = $1
	`

	var (
		profile domain.KYCProfile
		steps   []byte
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&steps,
		&profile.CurrentStep,
		&profile.Submitted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKYCProfileNotFound
		}

		return nil, err
	}

	if err := json.Unmarshal(steps, &profile.Steps); err != nil {
		return nil, fmt.Errorf("decoding kyc steps: %w", err)
	}

	return &profile, nil
}

// Create inserts a new KYC profile.
func (r *KYCRepository) Create(ctx context.Context, profile *domain.KYCProfile) error {
	steps, err := json.Marshal(profile.Steps)
	if err != nil {
		return fmt.Errorf("encoding kyc steps: %w", err)
	}

	query := `
		INSERT INTO kyc_profiles (id, user_id, steps, current_step, submitted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		steps,
		profile.CurrentStep,
		profile.Submitted,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

// Update persists wizard progress.
func (r *KYCRepository) Update(ctx context.Context, profile *domain.KYCProfile) error {
	steps, err := json.Marshal(profile.Steps)
	if err != nil {
		return fmt.Errorf("encoding kyc steps: %w", err)
	}

	query := `
		UPDATE kyc_profiles
		SET steps = $2, current_step = $3, submitted = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		profile.ID,
		steps,
		profile.CurrentStep,
		profile.Submitted,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrKYCProfileNotFound
	}

	return nil
}
