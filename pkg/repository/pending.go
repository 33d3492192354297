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

// PendingRepository handles the moderation queue
type PendingRepository struct {
	db *sqlx.DB
}

// candidateSQL holds the event fields shared by queue entries and published events
type candidateSQL struct {
	Title            string     `db:"title"`
	ShortDescription string     `db:"short_description"`
	Description      string     `db:"description"`
	StartAt          *time.Time `db:"start_at"`
	EndAt            *time.Time `db:"end_at"`
	Address          string     `db:"address"`
	City             string     `db:"city"`
	Country          string     `db:"country"`
	ImageURL         string     `db:"image_url"`
	TicketURL        string     `db:"ticket_url"`
	Price            string     `db:"price"`
	Tags             tagsSQL    `db:"tags"`
	SourceURL        string     `db:"source_url"`
}

// pendingSQL represents a queue entry for SQL operations
type pendingSQL struct {
	ID       int64         `db:"id"`
	SourceID sql.NullInt64 `db:"source_id"`
	UserID   int64         `db:"user_id"`
	Category string        `db:"category"`
	Status   string        `db:"status"`
	candidateSQL
	ReviewedAt *time.Time `db:"reviewed_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

const pendingColumns = `id, source_id, user_id, category, status, title, short_description, description,
	start_at, end_at, address, city, country, image_url, ticket_url, price, tags, source_url, reviewed_at, created_at`

// NewPendingRepository creates a new pending events repository
func NewPendingRepository(db *sqlx.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

// CreatePending inserts a queue entry with PENDING status
func (r *PendingRepository) CreatePending(ctx context.Context, p *domain.PendingEvent) error {
	query := `
		INSERT INTO pending_events (source_id, user_id, category, status, title, short_description, description,
			start_at, end_at, address, city, country, image_url, ticket_url, price, tags, source_url)
		VALUES (?, ?, ?, 'PENDING', ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, nullID(p.SourceID), p.UserID, string(p.Category),
			p.Title, p.ShortDescription, p.Description, utcPtr(p.StartAt), utcPtr(p.EndAt),
			p.Address, p.City, p.Country, p.ImageURL, p.TicketURL, p.Price, tagsSQL(p.Tags), p.SourceURL)
		if err != nil {
			return fmt.Errorf("create pending event: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		p.ID = id
		p.Status = domain.StatusPending
		return nil
	})
}

// GetPending retrieves a queue entry by ID
func (r *PendingRepository) GetPending(ctx context.Context, id int64) (*domain.PendingEvent, error) {
	var p pendingSQL
	err := r.db.GetContext(ctx, &p, "SELECT "+pendingColumns+" FROM pending_events WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get pending event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get pending event: %w", err)
	}
	return p.toDomain(), nil
}

// ListPending returns queue entries matching the filter, newest first
func (r *PendingRepository) ListPending(ctx context.Context, filter domain.PendingFilter) ([]domain.PendingEvent, error) {
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.UserID)
	}

	query := "SELECT " + pendingColumns + " FROM pending_events"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, max(filter.Offset, 0))

	var rows []pendingSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	res := make([]domain.PendingEvent, len(rows))
	for i := range rows {
		res[i] = *rows[i].toDomain()
	}
	return res, nil
}

// GetQueueKeys returns dedup keys of PENDING and APPROVED entries within the scope.
// Rejected entries are not considered, a rejected candidate may be re-ingested.
func (r *PendingRepository) GetQueueKeys(ctx context.Context, scope domain.DedupScope) ([]domain.DedupKey, error) {
	query := "SELECT title, source_url FROM pending_events WHERE status IN ('PENDING', 'APPROVED')"
	var args []interface{}
	if !scope.Global {
		query += " AND user_id = ?"
		args = append(args, scope.UserID)
	}

	var keys []struct {
		Title     string `db:"title"`
		SourceURL string `db:"source_url"`
	}
	if err := r.db.SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, fmt.Errorf("get queue keys: %w", err)
	}
	res := make([]domain.DedupKey, len(keys))
	for i, k := range keys {
		res[i] = domain.DedupKey{Title: k.Title, SourceURL: k.SourceURL}
	}
	return res, nil
}

// UpdatePending applies moderator edits to an entry still in PENDING status
func (r *PendingRepository) UpdatePending(ctx context.Context, id int64, upd domain.PendingUpdate) error {
	var sets []string
	var args []interface{}
	add := func(col string, val interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Category != nil {
		add("category", string(*upd.Category))
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.StartAt != nil {
		add("start_at", upd.StartAt.UTC())
	}
	if upd.EndAt != nil {
		add("end_at", upd.EndAt.UTC())
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.TicketURL != nil {
		add("ticket_url", *upd.TicketURL)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if len(sets) == 0 {
		return r.checkPending(ctx, r.db, id) // nothing to change, still report missing or terminal entries
	}

	query := "UPDATE pending_events SET " + strings.Join(sets, ", ") + " WHERE id = ? AND status = 'PENDING'"
	args = append(args, id)
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update pending event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if n == 0 {
			return r.checkPending(ctx, r.db, id)
		}
		return nil
	})
}

// RejectPending moves a PENDING entry to REJECTED
func (r *PendingRepository) RejectPending(ctx context.Context, id int64, at time.Time) error {
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			"UPDATE pending_events SET status = 'REJECTED', reviewed_at = ? WHERE id = ? AND status = 'PENDING'",
			at.UTC(), id)
		if err != nil {
			return fmt.Errorf("reject pending event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if n == 0 {
			return r.checkPending(ctx, r.db, id)
		}
		return nil
	})
}

// ApprovePending flips a PENDING entry to APPROVED and creates the published event in one transaction.
// The status guard and the unique pending_event_id make double approval impossible.
func (r *PendingRepository) ApprovePending(ctx context.Context, id int64, at time.Time) (eventID int64, err error) {
	err = withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx,
			"UPDATE pending_events SET status = 'APPROVED', reviewed_at = ? WHERE id = ? AND status = 'PENDING'",
			at.UTC(), id)
		if err != nil {
			return fmt.Errorf("approve pending event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if n == 0 {
			return r.checkPending(ctx, tx, id)
		}

		insert := `
			INSERT INTO events (pending_event_id, user_id, category, title, short_description, description,
				start_at, end_at, address, city, country, image_url, ticket_url, price, tags, source_url)
			SELECT id, user_id, category, title, short_description, description,
				start_at, end_at, address, city, country, image_url, ticket_url, price, tags, source_url
			FROM pending_events WHERE id = ?
		`
		res, err = tx.ExecContext(ctx, insert, id)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if eventID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return eventID, nil
}

// checkPending explains why a status-guarded update touched no rows
func (r *PendingRepository) checkPending(ctx context.Context, q sqlx.QueryerContext, id int64) error {
	var status string
	err := sqlx.GetContext(ctx, q, &status, "SELECT status FROM pending_events WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("pending event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check pending event: %w", err)
	}
	if domain.PendingStatus(status).Terminal() {
		return fmt.Errorf("pending event %d is %s: %w", id, status, ErrNotPending)
	}
	return nil
}

func (p *pendingSQL) toDomain() *domain.PendingEvent {
	return &domain.PendingEvent{
		ID:             p.ID,
		SourceID:       p.SourceID.Int64,
		UserID:         p.UserID,
		Category:       domain.Category(p.Category),
		Status:         domain.PendingStatus(p.Status),
		CandidateEvent: p.toCandidate(),
		ReviewedAt:     p.ReviewedAt,
		CreatedAt:      p.CreatedAt,
	}
}

func (c *candidateSQL) toCandidate() domain.CandidateEvent {
	return domain.CandidateEvent{
		Title:            c.Title,
		ShortDescription: c.ShortDescription,
		Description:      c.Description,
		StartAt:          c.StartAt,
		EndAt:            c.EndAt,
		Address:          c.Address,
		City:             c.City,
		Country:          c.Country,
		ImageURL:         c.ImageURL,
		TicketURL:        c.TicketURL,
		Price:            c.Price,
		Tags:             []string(c.Tags),
		SourceURL:        c.SourceURL,
	}
}

func utcPtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
