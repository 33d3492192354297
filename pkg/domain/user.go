package domain

import "time"

// User is the owner of sources and pending events
type User struct {
	ID        int64
	Name      string
	Email     string
	IsPartner bool // elevated status, gates scheduled scraping and monthly grants
	Credits   int  // entitlement counter increased by the monthly grant
	CreatedAt time.Time
}
