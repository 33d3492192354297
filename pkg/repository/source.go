package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/eventscope/pkg/domain"
)

// SourceRepository handles monitored source operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source for SQL operations, owner_is_partner comes from the users join
type sourceSQL struct {
	ID              int64      `db:"id"`
	URL             string     `db:"url"`
	Name            string     `db:"name"`
	UserID          int64      `db:"user_id"`
	IsGlobal        bool       `db:"is_global"`
	IsActive        bool       `db:"is_active"`
	DefaultCategory string     `db:"default_category"`
	DefaultCity     string     `db:"default_city"`
	LastScrapedAt   *time.Time `db:"last_scraped_at"`
	LastEventCount  int        `db:"last_event_count"`
	ErrorCount      int        `db:"error_count"`
	LastError       string     `db:"last_error"`
	CreatedAt       time.Time  `db:"created_at"`
	OwnerIsPartner  bool       `db:"owner_is_partner"`
}

const sourceSelect = `
	SELECT s.id, s.url, s.name, s.user_id, s.is_global, s.is_active, s.default_category, s.default_city,
	       s.last_scraped_at, s.last_event_count, s.error_count, s.last_error, s.created_at,
	       COALESCE(u.is_partner, 0) AS owner_is_partner
	FROM sources s
	LEFT JOIN users u ON u.id = s.user_id`

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// CreateSource inserts a new source, the source is active unless IsActive was explicitly cleared by the caller
func (r *SourceRepository) CreateSource(ctx context.Context, src *domain.Source) error {
	query := `
		INSERT INTO sources (url, name, user_id, is_global, is_active, default_category, default_city)
		VALUES (:url, :name, :user_id, :is_global, :is_active, :default_category, :default_city)
	`
	result, err := r.db.NamedExecContext(ctx, query, &sourceSQL{
		URL:             src.URL,
		Name:            src.Name,
		UserID:          src.UserID,
		IsGlobal:        src.IsGlobal,
		IsActive:        src.IsActive,
		DefaultCategory: string(src.DefaultCategory),
		DefaultCity:     src.DefaultCity,
	})
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	src.ID = id
	return nil
}

// GetSource retrieves a source by ID
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	var s sourceSQL
	err := r.db.GetContext(ctx, &s, sourceSelect+" WHERE s.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get source %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}
	return s.toDomain(), nil
}

// ListSources returns sources of the given user, or all sources when userID is zero
func (r *SourceRepository) ListSources(ctx context.Context, userID int64) ([]domain.Source, error) {
	query := sourceSelect
	args := []interface{}{}
	if userID != 0 {
		query += " WHERE s.user_id = ? OR s.is_global = 1"
		args = append(args, userID)
	}
	query += " ORDER BY s.id"

	var rows []sourceSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	return toDomainSources(rows), nil
}

// GetSchedulableSources returns active sources which are global or owned by a partner.
// Due-time filtering is left to the caller.
func (r *SourceRepository) GetSchedulableSources(ctx context.Context) ([]domain.Source, error) {
	query := sourceSelect + `
		WHERE s.is_active = 1 AND (s.is_global = 1 OR u.is_partner = 1)
		ORDER BY s.last_scraped_at IS NOT NULL, s.last_scraped_at, s.id`

	var rows []sourceSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get schedulable sources: %w", err)
	}
	return toDomainSources(rows), nil
}

// UpdateSourceScraped records a successful scrape and clears the error state
func (r *SourceRepository) UpdateSourceScraped(ctx context.Context, id int64, at time.Time, eventCount int) error {
	return withLockRetry(ctx, func() error {
		query := `
			UPDATE sources
			SET last_scraped_at = ?,
			    last_event_count = ?,
			    error_count = 0,
			    last_error = ''
			WHERE id = ?
		`
		res, err := r.db.ExecContext(ctx, query, at.UTC(), eventCount, id)
		if err != nil {
			return fmt.Errorf("update source scraped: %w", err)
		}
		return expectAffected(res, fmt.Sprintf("source %d", id))
	})
}

// UpdateSourceError records a failed scrape and increments the consecutive error counter
func (r *SourceRepository) UpdateSourceError(ctx context.Context, id int64, at time.Time, errMsg string) error {
	return withLockRetry(ctx, func() error {
		query := `
			UPDATE sources
			SET last_scraped_at = ?,
			    error_count = error_count + 1,
			    last_error = ?
			WHERE id = ?
		`
		res, err := r.db.ExecContext(ctx, query, at.UTC(), errMsg, id)
		if err != nil {
			return fmt.Errorf("update source error: %w", err)
		}
		return expectAffected(res, fmt.Sprintf("source %d", id))
	})
}

// UpdateSource applies admin edits to a source. Health fields are not touched.
func (r *SourceRepository) UpdateSource(ctx context.Context, id int64, upd domain.SourceUpdate) error {
	var sets []string
	var args []interface{}
	if upd.URL != nil {
		sets, args = append(sets, "url = ?"), append(args, *upd.URL)
	}
	if upd.Name != nil {
		sets, args = append(sets, "name = ?"), append(args, *upd.Name)
	}
	if upd.DefaultCategory != nil {
		sets, args = append(sets, "default_category = ?"), append(args, string(*upd.DefaultCategory))
	}
	if upd.DefaultCity != nil {
		sets, args = append(sets, "default_city = ?"), append(args, *upd.DefaultCity)
	}
	if len(sets) == 0 {
		_, err := r.GetSource(ctx, id)
		return err
	}

	query := "UPDATE sources SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update source: %w", err)
		}
		return expectAffected(res, fmt.Sprintf("source %d", id))
	})
}

// SetSourceActive enables or disables a source. Enabling also clears the error state,
// so a manually re-enabled source gets a full set of attempts.
func (r *SourceRepository) SetSourceActive(ctx context.Context, id int64, active bool) error {
	query := "UPDATE sources SET is_active = 0 WHERE id = ?"
	if active {
		query = "UPDATE sources SET is_active = 1, error_count = 0, last_error = '' WHERE id = ?"
	}
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("set source active: %w", err)
		}
		return expectAffected(res, fmt.Sprintf("source %d", id))
	})
}

// DeleteSource removes a source, queue entries keep their data with a NULL source
func (r *SourceRepository) DeleteSource(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("source %d", id))
}

func (s *sourceSQL) toDomain() *domain.Source {
	return &domain.Source{
		ID:              s.ID,
		URL:             s.URL,
		Name:            s.Name,
		UserID:          s.UserID,
		IsGlobal:        s.IsGlobal,
		IsActive:        s.IsActive,
		DefaultCategory: domain.Category(s.DefaultCategory),
		DefaultCity:     s.DefaultCity,
		LastScrapedAt:   s.LastScrapedAt,
		LastEventCount:  s.LastEventCount,
		ErrorCount:      s.ErrorCount,
		LastError:       s.LastError,
		CreatedAt:       s.CreatedAt,
		OwnerIsPartner:  s.OwnerIsPartner,
	}
}

func toDomainSources(rows []sourceSQL) []domain.Source {
	res := make([]domain.Source, len(rows))
	for i := range rows {
		res[i] = *rows[i].toDomain()
	}
	return res
}
