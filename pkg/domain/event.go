package domain

import "time"

// CandidateEvent is an unvetted event extracted from a source page, never persisted directly
type CandidateEvent struct {
	Title            string
	ShortDescription string
	Description      string
	StartAt          *time.Time
	EndAt            *time.Time
	Address          string
	City             string
	Country          string
	ImageURL         string
	TicketURL        string
	Price            string
	Tags             []string
	SourceURL        string // provenance of the candidate
}

// PendingStatus is the moderation state of a queue entry
type PendingStatus string

// moderation states, APPROVED and REJECTED are terminal
const (
	StatusPending  PendingStatus = "PENDING"
	StatusApproved PendingStatus = "APPROVED"
	StatusRejected PendingStatus = "REJECTED"
)

// Terminal reports whether no further moderation is allowed
func (s PendingStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// PendingEvent is a moderation queue entry created by the ingestion pipeline
type PendingEvent struct {
	ID       int64
	SourceID int64
	UserID   int64
	Category Category
	Status   PendingStatus
	CandidateEvent
	ReviewedAt *time.Time
	CreatedAt  time.Time
}

// Event is a published listing promoted from an approved queue entry
type Event struct {
	ID             int64
	PendingEventID int64
	UserID         int64
	Category       Category
	CandidateEvent
	CreatedAt time.Time
}

// PendingFilter narrows queue listings
type PendingFilter struct {
	Status PendingStatus // empty means any
	UserID int64         // zero means any
	Limit  int
	Offset int
}

// PendingUpdate holds moderator edits for a pending entry, nil fields are left unchanged
type PendingUpdate struct {
	Title       *string
	Description *string
	Category    *Category
	City        *string
	Address     *string
	StartAt     *time.Time
	EndAt       *time.Time
	Price       *string
	TicketURL   *string
	ImageURL    *string
}

// DedupKey is the part of an existing record used for duplicate detection
type DedupKey struct {
	Title     string
	SourceURL string
}
