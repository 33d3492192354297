package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SettingCreditGrantMonth keeps the year-month of the last monthly credit grant
const SettingCreditGrantMonth = "last_credit_grant_month"

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value, missing keys return an empty string
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	return getSetting(ctx, r.db, key)
}

// SetSetting stores a setting value
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	return setSetting(ctx, r.db, key, value)
}

// GrantMonthlyCredits adds amount credits to every partner once per month.
// The month marker is checked and stored in the same transaction as the grant.
// Returns the number of users granted, zero if the month was already granted.
func (r *SettingRepository) GrantMonthlyCredits(ctx context.Context, month string, amount int) (granted int, err error) {
	err = withLockRetry(ctx, func() error {
		granted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		last, err := getSetting(ctx, tx, SettingCreditGrantMonth)
		if err != nil {
			return err
		}
		if last == month {
			return nil
		}

		res, err := tx.ExecContext(ctx, "UPDATE users SET credits = credits + ? WHERE is_partner = 1", amount)
		if err != nil {
			return fmt.Errorf("grant credits: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}

		if err := setSetting(ctx, tx, SettingCreditGrantMonth, month); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		granted = int(n)
		return nil
	})
	return granted, err
}

func getSetting(ctx context.Context, q sqlx.QueryerContext, key string) (string, error) {
	var value string
	err := sqlx.GetContext(ctx, q, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

func setSetting(ctx context.Context, e sqlx.ExecerContext, key, value string) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := e.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}
