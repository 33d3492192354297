package domain

// scrape phases reported to interactive callers
const (
	PhaseFetch      = "fetch"
	PhaseParse      = "parse"
	PhaseExtract    = "extract"
	PhaseDedup      = "dedup"
	PhaseCategorize = "categorize"
	PhaseSave       = "save"
	PhaseDone       = "done"
	PhaseError      = "error"
)

// Progress is an incremental notification emitted during a scrape
type Progress struct {
	Phase       string `json:"phase"`
	Message     string `json:"message"`
	EventsFound int    `json:"events_found,omitempty"`
}

// ProgressFunc receives progress notifications, may be nil
type ProgressFunc func(Progress)

// Report calls fn if it is set
func (fn ProgressFunc) Report(phase, msg string, found int) {
	if fn == nil {
		return
	}
	fn(Progress{Phase: phase, Message: msg, EventsFound: found})
}

// ScrapeResult is the outcome of a single source scrape cycle
type ScrapeResult struct {
	NewEvents int    `json:"new_events"`
	Skipped   int    `json:"skipped"`
	Error     string `json:"error,omitempty"`
	Busy      bool   `json:"busy,omitempty"` // another run holds the source lease
}
