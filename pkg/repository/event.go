package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/eventscope/pkg/domain"
)

// EventRepository handles published events
type EventRepository struct {
	db *sqlx.DB
}

// eventSQL represents a published event for SQL operations
type eventSQL struct {
	ID             int64         `db:"id"`
	PendingEventID sql.NullInt64 `db:"pending_event_id"`
	UserID         int64         `db:"user_id"`
	Category       string        `db:"category"`
	candidateSQL
	CreatedAt time.Time `db:"created_at"`
}

const eventColumns = `id, pending_event_id, user_id, category, title, short_description, description,
	start_at, end_at, address, city, country, image_url, ticket_url, price, tags, source_url, created_at`

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent inserts a published event directly, used for events not coming from the queue
func (r *EventRepository) CreateEvent(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (pending_event_id, user_id, category, title, short_description, description,
			start_at, end_at, address, city, country, image_url, ticket_url, price, tags, source_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query, nullID(e.PendingEventID), e.UserID, string(e.Category),
		e.Title, e.ShortDescription, e.Description, utcPtr(e.StartAt), utcPtr(e.EndAt),
		e.Address, e.City, e.Country, e.ImageURL, e.TicketURL, e.Price, tagsSQL(e.Tags), e.SourceURL)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	e.ID = id
	return nil
}

// GetEvent retrieves a published event by ID
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	var e eventSQL
	err := r.db.GetContext(ctx, &e, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e.toDomain(), nil
}

// GetPublishedKeys returns dedup keys of published events within the scope
func (r *EventRepository) GetPublishedKeys(ctx context.Context, scope domain.DedupScope) ([]domain.DedupKey, error) {
	query := "SELECT title, source_url FROM events"
	var args []interface{}
	if !scope.Global {
		query += " WHERE user_id = ?"
		args = append(args, scope.UserID)
	}

	var keys []struct {
		Title     string `db:"title"`
		SourceURL string `db:"source_url"`
	}
	if err := r.db.SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, fmt.Errorf("get published keys: %w", err)
	}
	res := make([]domain.DedupKey, len(keys))
	for i, k := range keys {
		res[i] = domain.DedupKey{Title: k.Title, SourceURL: k.SourceURL}
	}
	return res, nil
}

func (e *eventSQL) toDomain() *domain.Event {
	return &domain.Event{
		ID:             e.ID,
		PendingEventID: e.PendingEventID.Int64,
		UserID:         e.UserID,
		Category:       domain.Category(e.Category),
		CandidateEvent: e.toCandidate(),
		CreatedAt:      e.CreatedAt,
	}
}
