package domain

import "time"

// Source is a page registered for periodic event extraction
type Source struct {
	ID              int64
	URL             string
	Name            string
	UserID          int64 // owning user
	IsGlobal        bool  // system-wide source, deduplicated across all users
	IsActive        bool
	DefaultCategory Category // overrides categorization when set
	DefaultCity     string   // overrides candidate city when set
	LastScrapedAt   *time.Time
	LastEventCount  int
	ErrorCount      int // consecutive failures, reset on success
	LastError       string
	CreatedAt       time.Time

	// OwnerIsPartner is populated by queries joining the owning user
	OwnerIsPartner bool
}

// IsDue reports whether the source was never scraped or was last scraped at least interval ago
func (s *Source) IsDue(now time.Time, interval time.Duration) bool {
	if s.LastScrapedAt == nil {
		return true
	}
	return !s.LastScrapedAt.After(now.Add(-interval))
}

// Schedulable reports whether the scheduler may scrape this source at all.
// Sources of downgraded users are skipped, not disabled.
func (s *Source) Schedulable() bool {
	return s.IsActive && (s.IsGlobal || s.OwnerIsPartner)
}

// SourceUpdate holds admin edits of a source, nil fields are left unchanged.
// An empty DefaultCategory or DefaultCity removes the override.
type SourceUpdate struct {
	URL             *string
	Name            *string
	DefaultCategory *Category
	DefaultCity     *string
}

// DedupScope selects which existing records candidates are compared against
type DedupScope struct {
	UserID int64
	Global bool // compare against all users' records
}

// ScopeFor returns the dedup scope implied by the source type
func ScopeFor(s *Source) DedupScope {
	return DedupScope{UserID: s.UserID, Global: s.IsGlobal}
}
