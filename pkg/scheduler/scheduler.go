// Package scheduler runs the periodic scrape loop. Two tasks share one timer:
// the due-source scan, which scrapes every eligible source one at a time with a
// politeness delay between them, and the monthly credit grant for partners.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/eventscope/pkg/domain"
)

//go:generate moq -out mocks/source_lister.go -pkg mocks -skip-ensure -fmt goimports . SourceLister
//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper
//go:generate moq -out mocks/credit_granter.go -pkg mocks -skip-ensure -fmt goimports . CreditGranter

// SourceLister returns active sources that are global or owned by a partner
type SourceLister interface {
	GetSchedulableSources(ctx context.Context) ([]domain.Source, error)
}

// Scraper runs a single scrape cycle
type Scraper interface {
	RunScrape(ctx context.Context, src *domain.Source) domain.ScrapeResult
}

// CreditGranter grants partner credits once per month, returns the number of users granted
type CreditGranter interface {
	GrantMonthlyCredits(ctx context.Context, month string, amount int) (int, error)
}

// Scheduler manages periodic scraping of monitored sources and the monthly grant
type Scheduler struct {
	sources SourceLister
	scraper Scraper
	granter CreditGranter

	checkInterval    time.Duration
	rescrapeInterval time.Duration
	politenessDelay  time.Duration
	startupDelay     time.Duration
	monthlyCredits   int
	now              func() time.Time

	mu             sync.Mutex // serializes passes and guards lastGrantMonth
	lastGrantMonth string     // year-month of the last grant done by this process

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Params defines scheduler dependencies and timing. Granter is optional.
// Zero CheckInterval and RescrapeInterval default to 1h and 24h, the delays are used as given.
type Params struct {
	Sources SourceLister
	Scraper Scraper
	Granter CreditGranter

	CheckInterval    time.Duration // how often both tasks run
	RescrapeInterval time.Duration // minimal age of the last scrape for a source to be due
	PolitenessDelay  time.Duration // pause between two sources
	StartupDelay     time.Duration // pause before the first pass
	MonthlyCredits   int           // credits granted to each partner per month
	Now              func() time.Time
}

// Summary aggregates the outcome of one due-source scan
type Summary struct {
	Sources   int
	NewEvents int
	Skipped   int
	Failed    int
	Busy      int
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.CheckInterval <= 0 {
		params.CheckInterval = time.Hour
	}
	if params.RescrapeInterval <= 0 {
		params.RescrapeInterval = 24 * time.Hour
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Scheduler{
		sources:          params.Sources,
		scraper:          params.Scraper,
		granter:          params.Granter,
		checkInterval:    params.CheckInterval,
		rescrapeInterval: params.RescrapeInterval,
		politenessDelay:  params.PolitenessDelay,
		startupDelay:     params.StartupDelay,
		monthlyCredits:   params.MonthlyCredits,
		now:              params.Now,
	}
}

// Start begins the scheduler loop in background
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.worker(ctx)

	lgr.Printf("[INFO] scheduler started with check interval %v, rescrape interval %v, politeness delay %v",
		s.checkInterval, s.rescrapeInterval, s.politenessDelay)
}

// Stop gracefully stops the scheduler, an in-flight scrape is allowed to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// worker runs both tasks once after the startup delay and then on every tick
func (s *Scheduler) worker(ctx context.Context) {
	defer s.wg.Done()

	if !sleep(ctx, s.startupDelay) {
		return
	}
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs one pass: the monthly grant check followed by the due-source scan
func (s *Scheduler) RunOnce(ctx context.Context) Summary {
	s.GrantMonthly(ctx)
	return s.ScanDueSources(ctx)
}

// GrantMonthly grants partner credits if this month was not granted yet, reports whether a grant ran
func (s *Scheduler) GrantMonthly(ctx context.Context) bool {
	if s.granter == nil || s.monthlyCredits <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	month := s.now().Format("2006-01")
	if month == s.lastGrantMonth {
		return false
	}

	granted, err := s.granter.GrantMonthlyCredits(ctx, month, s.monthlyCredits)
	if err != nil {
		lgr.Printf("[ERROR] failed to grant monthly credits for %s: %v", month, err)
		return false // retried on the next tick
	}
	s.lastGrantMonth = month
	if granted == 0 {
		lgr.Printf("[DEBUG] monthly credits for %s already granted", month)
		return false
	}
	lgr.Printf("[INFO] granted %d credits to %d partners for %s", s.monthlyCredits, granted, month)
	return true
}

// ScanDueSources scrapes every schedulable source whose last scrape is older than the rescrape interval.
// Sources are processed sequentially with the politeness delay between them.
func (s *Scheduler) ScanDueSources(ctx context.Context) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.sources.GetSchedulableSources(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to get sources: %v", err)
		return Summary{}
	}

	now := s.now()
	due := make([]domain.Source, 0, len(all))
	for _, src := range all {
		if src.Schedulable() && src.IsDue(now, s.rescrapeInterval) {
			due = append(due, src)
		}
	}
	if len(due) == 0 {
		lgr.Printf("[DEBUG] no sources due, %d schedulable", len(all))
		return Summary{}
	}

	lgr.Printf("[INFO] scraping %d due sources", len(due))
	var sum Summary
	for i := range due {
		if i > 0 && !sleep(ctx, s.politenessDelay) {
			lgr.Printf("[INFO] scan interrupted after %d of %d sources", i, len(due))
			break
		}
		res := s.scraper.RunScrape(ctx, &due[i])
		sum.Sources++
		switch {
		case res.Busy:
			sum.Busy++
		case res.Error != "":
			sum.Failed++
		default:
			sum.NewEvents += res.NewEvents
			sum.Skipped += res.Skipped
		}
	}

	lgr.Printf("[INFO] scan completed: %d sources, %d new events, %d skipped, %d failed, %d busy",
		sum.Sources, sum.NewEvents, sum.Skipped, sum.Failed, sum.Busy)
	return sum
}

// sleep waits for d or until ctx is done, returns false if ctx is done
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
