package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// LeaseRepository provides per-source mutual exclusion tokens with a TTL
type LeaseRepository struct {
	db *sqlx.DB
}

// NewLeaseRepository creates a new lease repository
func NewLeaseRepository(db *sqlx.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// AcquireLease takes the lease on a source for owner until now+ttl.
// Succeeds if there is no lease, the existing one expired, or owner already holds it.
func (r *LeaseRepository) AcquireLease(ctx context.Context, sourceID int64, owner string, now time.Time, ttl time.Duration) (bool, error) {
	query := `
		INSERT INTO source_leases (source_id, owner, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at
		WHERE source_leases.expires_at <= ? OR source_leases.owner = excluded.owner
	`
	var acquired bool
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, sourceID, owner, now.Add(ttl).Unix(), now.Unix())
		if err != nil {
			return fmt.Errorf("acquire lease: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		acquired = n > 0
		return nil
	})
	return acquired, err
}

// ReleaseLease drops the lease if it is still held by owner
func (r *LeaseRepository) ReleaseLease(ctx context.Context, sourceID int64, owner string) error {
	return withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM source_leases WHERE source_id = ? AND owner = ?", sourceID, owner)
		if err != nil {
			return fmt.Errorf("release lease: %w", err)
		}
		return nil
	})
}
