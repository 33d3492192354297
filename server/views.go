package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/umputun/eventscope/pkg/domain"
)

// sourceView is the JSON representation of a monitored source
type sourceView struct {
	ID              int64      `json:"id"`
	URL             string     `json:"url"`
	Name            string     `json:"name,omitempty"`
	UserID          int64      `json:"user_id,omitempty"`
	IsGlobal        bool       `json:"is_global"`
	IsActive        bool       `json:"is_active"`
	DefaultCategory string     `json:"default_category,omitempty"`
	DefaultCity     string     `json:"default_city,omitempty"`
	LastScrapedAt   *time.Time `json:"last_scraped_at,omitempty"`
	LastEventCount  int        `json:"last_event_count"`
	ErrorCount      int        `json:"error_count"`
	LastError       string     `json:"last_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// eventView is the JSON representation of queue entries and published events
type eventView struct {
	ID               int64      `json:"id"`
	PendingEventID   int64      `json:"pending_event_id,omitempty"`
	SourceID         int64      `json:"source_id,omitempty"`
	UserID           int64      `json:"user_id,omitempty"`
	Status           string     `json:"status,omitempty"`
	Category         string     `json:"category"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description,omitempty"`
	Description      string     `json:"description,omitempty"`
	StartAt          *time.Time `json:"start_at,omitempty"`
	EndAt            *time.Time `json:"end_at,omitempty"`
	Address          string     `json:"address,omitempty"`
	City             string     `json:"city,omitempty"`
	Country          string     `json:"country,omitempty"`
	ImageURL         string     `json:"image_url,omitempty"`
	TicketURL        string     `json:"ticket_url,omitempty"`
	Price            string     `json:"price,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	SourceURL        string     `json:"source_url,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// sourceRequest is the body of a source creation request
type sourceRequest struct {
	URL             string `json:"url"`
	Name            string `json:"name"`
	IsGlobal        bool   `json:"is_global"`
	DefaultCategory string `json:"default_category"`
	DefaultCity     string `json:"default_city"`
}

// sourceUpdateRequest is the body of a source edit, absent fields stay unchanged
type sourceUpdateRequest struct {
	URL             *string `json:"url"`
	Name            *string `json:"name"`
	DefaultCategory *string `json:"default_category"`
	DefaultCity     *string `json:"default_city"`
}

// pendingRequest is the body of a moderator edit, absent fields stay unchanged
type pendingRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	City        *string    `json:"city"`
	Address     *string    `json:"address"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Price       *string    `json:"price"`
	TicketURL   *string    `json:"ticket_url"`
	ImageURL    *string    `json:"image_url"`
}

func newSourceView(src *domain.Source) sourceView {
	return sourceView{
		ID:              src.ID,
		URL:             src.URL,
		Name:            src.Name,
		UserID:          src.UserID,
		IsGlobal:        src.IsGlobal,
		IsActive:        src.IsActive,
		DefaultCategory: string(src.DefaultCategory),
		DefaultCity:     src.DefaultCity,
		LastScrapedAt:   src.LastScrapedAt,
		LastEventCount:  src.LastEventCount,
		ErrorCount:      src.ErrorCount,
		LastError:       src.LastError,
		CreatedAt:       src.CreatedAt,
	}
}

func candidateView(c domain.CandidateEvent) eventView {
	return eventView{
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
		Tags:             c.Tags,
		SourceURL:        c.SourceURL,
	}
}

func newPendingView(p *domain.PendingEvent) eventView {
	v := candidateView(p.CandidateEvent)
	v.ID = p.ID
	v.SourceID = p.SourceID
	v.UserID = p.UserID
	v.Status = string(p.Status)
	v.Category = string(p.Category)
	v.ReviewedAt = p.ReviewedAt
	v.CreatedAt = p.CreatedAt
	return v
}

func newEventView(e *domain.Event) eventView {
	v := candidateView(e.CandidateEvent)
	v.ID = e.ID
	v.PendingEventID = e.PendingEventID
	v.UserID = e.UserID
	v.Category = string(e.Category)
	v.CreatedAt = e.CreatedAt
	return v
}

// toUpdate converts the request to a domain update, the category must be known
func (req pendingRequest) toUpdate() (domain.PendingUpdate, bool) {
	upd := domain.PendingUpdate{
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Price:       req.Price,
		TicketURL:   req.TicketURL,
		ImageURL:    req.ImageURL,
	}
	if req.Category != nil {
		cat := domain.Category(*req.Category)
		if !cat.Valid() {
			return upd, false
		}
		upd.Category = &cat
	}
	return upd, true
}

// toUpdate converts the request to a domain update, values are trimmed and an empty category clears the override
func (req sourceUpdateRequest) toUpdate() (domain.SourceUpdate, error) {
	var upd domain.SourceUpdate
	if req.URL != nil {
		u := strings.TrimSpace(*req.URL)
		if err := validateSourceURL(u); err != nil {
			return upd, err
		}
		upd.URL = &u
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		upd.Name = &name
	}
	if req.DefaultCategory != nil {
		cat := domain.Category(strings.TrimSpace(*req.DefaultCategory))
		if cat != "" && !cat.Valid() {
			return upd, fmt.Errorf("unknown category %q", *req.DefaultCategory)
		}
		upd.DefaultCategory = &cat
	}
	if req.DefaultCity != nil {
		city := strings.TrimSpace(*req.DefaultCity)
		upd.DefaultCity = &city
	}
	return upd, nil
}
