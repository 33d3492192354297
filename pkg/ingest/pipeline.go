// Package ingest runs a single scrape cycle for a monitored source: fetch, dedup, categorize,
// persist into the moderation queue and record source health.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/eventscope/pkg/dedup"
	"github.com/umputun/eventscope/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/source_manager.go -pkg mocks -skip-ensure -fmt goimports . SourceManager
//go:generate moq -out mocks/queue_manager.go -pkg mocks -skip-ensure -fmt goimports . QueueManager
//go:generate moq -out mocks/categorizer.go -pkg mocks -skip-ensure -fmt goimports . Categorizer
//go:generate moq -out mocks/fallback_categorizer.go -pkg mocks -skip-ensure -fmt goimports . FallbackCategorizer
//go:generate moq -out mocks/lease_manager.go -pkg mocks -skip-ensure -fmt goimports . LeaseManager
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

// ErrSourceBusy is reported when another run holds the lease on the source
var ErrSourceBusy = errors.New("source is being scraped by another run")

// trigger labels reported to the recorder
const (
	TriggerScheduled   = "scheduled"
	TriggerInteractive = "interactive"
)

// Fetcher extracts candidate events from a page
type Fetcher interface {
	Fetch(ctx context.Context, url string, onProgress domain.ProgressFunc) ([]domain.CandidateEvent, error)
}

// SourceManager reads sources and writes their health fields
type SourceManager interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	UpdateSourceScraped(ctx context.Context, id int64, at time.Time, eventCount int) error
	UpdateSourceError(ctx context.Context, id int64, at time.Time, errMsg string) error
	SetSourceActive(ctx context.Context, id int64, active bool) error
}

// QueueManager reads dedup keys and writes moderation queue entries
type QueueManager interface {
	GetQueueKeys(ctx context.Context, scope domain.DedupScope) ([]domain.DedupKey, error)
	GetPublishedKeys(ctx context.Context, scope domain.DedupScope) ([]domain.DedupKey, error)
	CreatePending(ctx context.Context, p *domain.PendingEvent) error
}

// Categorizer assigns a category from event text
type Categorizer interface {
	Categorize(title, description string, defaultCategory domain.Category) domain.Category
}

// FallbackCategorizer is consulted when the rules found nothing
type FallbackCategorizer interface {
	SuggestCategory(ctx context.Context, title, description string) (domain.Category, error)
}

// LeaseManager provides per-source mutual exclusion between runs
type LeaseManager interface {
	AcquireLease(ctx context.Context, sourceID int64, owner string, now time.Time, ttl time.Duration) (bool, error)
	ReleaseLease(ctx context.Context, sourceID int64, owner string) error
}

// Recorder collects scrape outcome metrics
type Recorder interface {
	ScrapeFinished(trigger string, res domain.ScrapeResult)
	SourceDisabled()
}

// Pipeline runs scrape cycles. It is safe for concurrent use, runs against the same
// source are serialized by the lease manager.
type Pipeline struct {
	fetcher     Fetcher
	sources     SourceManager
	queue       QueueManager
	categorizer Categorizer
	fallback    FallbackCategorizer
	leases      LeaseManager
	recorder    Recorder

	errorThreshold  int
	leaseTTL        time.Duration
	defaultCategory domain.Category
	now             func() time.Time
}

// Params defines pipeline dependencies and settings. Fallback, Leases and Recorder are optional.
type Params struct {
	Fetcher     Fetcher
	Sources     SourceManager
	Queue       QueueManager
	Categorizer Categorizer
	Fallback    FallbackCategorizer
	Leases      LeaseManager
	Recorder    Recorder

	ErrorThreshold  int             // consecutive failures before a source is disabled, 5 if not set
	LeaseTTL        time.Duration   // lease lifetime, 15m if not set
	DefaultCategory domain.Category // category when nothing matches, SONSTIGES if not set
	Now             func() time.Time
}

// run describes who triggered a cycle and how its output is scoped
type run struct {
	trigger  string
	scope    domain.DedupScope
	ownerID  int64
	progress domain.ProgressFunc
}

// New creates a pipeline
func New(params Params) *Pipeline {
	if params.ErrorThreshold <= 0 {
		params.ErrorThreshold = 5
	}
	if params.LeaseTTL <= 0 {
		params.LeaseTTL = 15 * time.Minute
	}
	if params.DefaultCategory == "" {
		params.DefaultCategory = domain.CategoryOther
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Pipeline{
		fetcher:         params.Fetcher,
		sources:         params.Sources,
		queue:           params.Queue,
		categorizer:     params.Categorizer,
		fallback:        params.Fallback,
		leases:          params.Leases,
		recorder:        params.Recorder,
		errorThreshold:  params.ErrorThreshold,
		leaseTTL:        params.LeaseTTL,
		defaultCategory: params.DefaultCategory,
		now:             params.Now,
	}
}

// RunScrape performs one scheduled cycle for src. Output is deduplicated within the source scope
// (owner only, or all users for a global source) and attributed to the source owner.
// Failures never surface as errors, they are reported in the result and recorded on the source.
func (p *Pipeline) RunScrape(ctx context.Context, src *domain.Source) domain.ScrapeResult {
	return p.execute(ctx, src, run{trigger: TriggerScheduled, scope: domain.ScopeFor(src), ownerID: src.UserID})
}

// RunInteractive performs one cycle on behalf of userID and streams progress to onProgress.
// Output is always deduplicated against and attributed to the triggering user.
func (p *Pipeline) RunInteractive(ctx context.Context, src *domain.Source, userID int64, onProgress domain.ProgressFunc) domain.ScrapeResult {
	r := run{trigger: TriggerInteractive, scope: domain.DedupScope{UserID: userID}, ownerID: userID, progress: onProgress}
	return p.execute(ctx, src, r)
}

func (p *Pipeline) execute(ctx context.Context, src *domain.Source, r run) domain.ScrapeResult {
	release, busy, err := p.lock(ctx, src.ID)
	switch {
	case err != nil:
		// lease store failure counts as a failed attempt like any other persistence error
		lgr.Printf("[ERROR] can't lock source %d: %v", src.ID, err)
		return p.finish(r, p.fail(ctx, src, r, err))
	case busy:
		lgr.Printf("[INFO] source %d (%s) skipped, %v", src.ID, src.URL, ErrSourceBusy)
		r.progress.Report(domain.PhaseError, ErrSourceBusy.Error(), 0)
		return p.finish(r, domain.ScrapeResult{Error: ErrSourceBusy.Error(), Busy: true})
	}
	defer release()

	return p.finish(r, p.scrape(ctx, src, r))
}

// scrape is the cycle itself, health fields are written on every path
func (p *Pipeline) scrape(ctx context.Context, src *domain.Source, r run) domain.ScrapeResult {
	lgr.Printf("[DEBUG] scraping source %d: %s", src.ID, src.URL)

	candidates, err := p.fetcher.Fetch(ctx, src.URL, r.progress)
	if err != nil {
		if ctx.Err() != nil {
			// shutdown, not a source failure
			lgr.Printf("[INFO] scrape of source %d interrupted: %v", src.ID, ctx.Err())
			r.progress.Report(domain.PhaseError, ctx.Err().Error(), 0)
			return domain.ScrapeResult{Error: ctx.Err().Error()}
		}
		return p.fail(ctx, src, r, fmt.Errorf("fetch %s: %w", src.URL, err))
	}

	if len(candidates) == 0 {
		p.markScraped(ctx, src, 0)
		r.progress.Report(domain.PhaseDone, "no events found", 0)
		return domain.ScrapeResult{}
	}

	r.progress.Report(domain.PhaseDedup, fmt.Sprintf("checking %d events for duplicates", len(candidates)), len(candidates))
	queueKeys, err := p.queue.GetQueueKeys(ctx, r.scope)
	if err != nil {
		return p.fail(ctx, src, r, err)
	}
	publishedKeys, err := p.queue.GetPublishedKeys(ctx, r.scope)
	if err != nil {
		return p.fail(ctx, src, r, err)
	}
	fresh := dedup.FilterNew(candidates, queueKeys, publishedKeys)
	skipped := len(candidates) - len(fresh)

	r.progress.Report(domain.PhaseCategorize, fmt.Sprintf("%d new, %d duplicates", len(fresh), skipped), len(fresh))
	for i := range fresh {
		pe := &domain.PendingEvent{
			SourceID:       src.ID,
			UserID:         r.ownerID,
			Category:       p.category(ctx, src, &fresh[i]),
			CandidateEvent: fresh[i],
		}
		if src.DefaultCity != "" {
			pe.City = src.DefaultCity
		}
		if err := p.queue.CreatePending(ctx, pe); err != nil {
			// entries saved so far stay in the queue
			return p.fail(ctx, src, r, fmt.Errorf("save %q: %w", pe.Title, err))
		}
		r.progress.Report(domain.PhaseSave, "saved "+pe.Title, i+1)
	}

	p.markScraped(ctx, src, len(fresh))
	lgr.Printf("[INFO] source %d: %d new events, %d skipped", src.ID, len(fresh), skipped)
	r.progress.Report(domain.PhaseDone, fmt.Sprintf("%d new events, %d skipped", len(fresh), skipped), len(fresh))
	return domain.ScrapeResult{NewEvents: len(fresh), Skipped: skipped}
}

// category picks the source override, the rule based category, or the fallback suggestion, in that order
func (p *Pipeline) category(ctx context.Context, src *domain.Source, c *domain.CandidateEvent) domain.Category {
	if src.DefaultCategory != "" {
		return src.DefaultCategory
	}
	cat := p.categorizer.Categorize(c.Title, c.Description, p.defaultCategory)
	if cat != p.defaultCategory || p.fallback == nil {
		return cat
	}

	suggested, err := p.fallback.SuggestCategory(ctx, c.Title, c.Description)
	if err != nil {
		lgr.Printf("[WARN] fallback categorization of %q failed: %v", c.Title, err)
		return cat
	}
	if !suggested.Valid() {
		lgr.Printf("[DEBUG] fallback categorization of %q returned unknown category %q", c.Title, suggested)
		return cat
	}
	return suggested
}

// fail records the failure on the source and disables it once the error threshold is reached
func (p *Pipeline) fail(ctx context.Context, src *domain.Source, r run, err error) domain.ScrapeResult {
	msg := err.Error()
	lgr.Printf("[WARN] scrape of source %d failed: %s", src.ID, msg)
	r.progress.Report(domain.PhaseError, msg, 0)

	if uerr := p.sources.UpdateSourceError(ctx, src.ID, p.now(), msg); uerr != nil {
		lgr.Printf("[ERROR] failed to record error for source %d: %v", src.ID, uerr)
		return domain.ScrapeResult{Error: msg}
	}

	// re-read, the counter may have been changed by a concurrent run or an admin
	current, gerr := p.sources.GetSource(ctx, src.ID)
	if gerr != nil {
		lgr.Printf("[ERROR] failed to reload source %d: %v", src.ID, gerr)
		return domain.ScrapeResult{Error: msg}
	}
	if current.IsActive && current.ErrorCount >= p.errorThreshold {
		if serr := p.sources.SetSourceActive(ctx, src.ID, false); serr != nil {
			lgr.Printf("[ERROR] failed to disable source %d: %v", src.ID, serr)
			return domain.ScrapeResult{Error: msg}
		}
		lgr.Printf("[WARN] source %d (%s) disabled after %d consecutive failures", src.ID, src.URL, current.ErrorCount)
		if p.recorder != nil {
			p.recorder.SourceDisabled()
		}
	}
	return domain.ScrapeResult{Error: msg}
}

func (p *Pipeline) markScraped(ctx context.Context, src *domain.Source, count int) {
	if err := p.sources.UpdateSourceScraped(ctx, src.ID, p.now(), count); err != nil {
		lgr.Printf("[ERROR] failed to update source %d after scrape: %v", src.ID, err)
	}
}

// lock takes the source lease, release must be called when busy and err are both unset
func (p *Pipeline) lock(ctx context.Context, sourceID int64) (release func(), busy bool, err error) {
	if p.leases == nil {
		return func() {}, false, nil
	}
	owner := uuid.NewString()
	ok, err := p.leases.AcquireLease(ctx, sourceID, owner, p.now(), p.leaseTTL)
	if err != nil {
		return nil, false, fmt.Errorf("acquire lease: %w", err)
	}
	if !ok {
		return nil, true, nil
	}
	return func() {
		if err := p.leases.ReleaseLease(context.WithoutCancel(ctx), sourceID, owner); err != nil {
			lgr.Printf("[WARN] failed to release lease on source %d: %v", sourceID, err)
		}
	}, false, nil
}

func (p *Pipeline) finish(r run, res domain.ScrapeResult) domain.ScrapeResult {
	if p.recorder != nil {
		p.recorder.ScrapeFinished(r.trigger, res)
	}
	return res
}
