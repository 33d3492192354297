// Package metrics exposes Prometheus collectors for scrape outcomes.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/eventscope/pkg/domain"
)

// result labels of the scrapes counter
const (
	ResultSuccess = "success"
	ResultEmpty   = "empty"
	ResultError   = "error"
	ResultBusy    = "busy"
)

// Recorder counts scrape cycles and their outcome
type Recorder struct {
	scrapes         *prometheus.CounterVec
	eventsIngested  *prometheus.CounterVec
	eventsSkipped   *prometheus.CounterVec
	sourcesDisabled prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collectors against reg, a fresh registry with go and process collectors is used if reg is nil
func New(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	r := &Recorder{
		scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventscope_scrapes_total",
			Help: "Scrape cycles partitioned by trigger and result.",
		}, []string{"trigger", "result"}),
		eventsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventscope_events_ingested_total",
			Help: "Candidate events added to the moderation queue.",
		}, []string{"trigger"}),
		eventsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eventscope_events_skipped_total",
			Help: "Candidate events dropped as duplicates.",
		}, []string{"trigger"}),
		sourcesDisabled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eventscope_sources_disabled_total",
			Help: "Sources disabled after consecutive failures.",
		}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{r.scrapes, r.eventsIngested, r.eventsSkipped, r.sourcesDisabled} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register scrape collector: %w", err)
		}
	}
	return r, nil
}

// ScrapeFinished records the outcome of one scrape cycle
func (r *Recorder) ScrapeFinished(trigger string, res domain.ScrapeResult) {
	r.scrapes.WithLabelValues(trigger, resultLabel(res)).Inc()
	if res.NewEvents > 0 {
		r.eventsIngested.WithLabelValues(trigger).Add(float64(res.NewEvents))
	}
	if res.Skipped > 0 {
		r.eventsSkipped.WithLabelValues(trigger).Add(float64(res.Skipped))
	}
}

// SourceDisabled records an automatic disable
func (r *Recorder) SourceDisabled() {
	r.sourcesDisabled.Inc()
}

// Handler returns an http.Handler exposing the registry the recorder was created with
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func resultLabel(res domain.ScrapeResult) string {
	switch {
	case res.Busy:
		return ResultBusy
	case res.Error != "":
		return ResultError
	case res.NewEvents == 0 && res.Skipped == 0:
		return ResultEmpty
	default:
		return ResultSuccess
	}
}
