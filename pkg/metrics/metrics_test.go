package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/eventscope/pkg/domain"
)

func TestRecorder_ScrapeFinished(t *testing.T) {
	rec, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	rec.ScrapeFinished("scheduled", domain.ScrapeResult{NewEvents: 2, Skipped: 1})
	rec.ScrapeFinished("scheduled", domain.ScrapeResult{})
	rec.ScrapeFinished("scheduled", domain.ScrapeResult{Error: "boom"})
	rec.ScrapeFinished("interactive", domain.ScrapeResult{Busy: true, Error: "source is busy"})
	rec.ScrapeFinished("interactive", domain.ScrapeResult{Skipped: 4})

	assert.InDelta(t, 1.0, testutil.ToFloat64(rec.scrapes.WithLabelValues("scheduled", ResultSuccess)), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(rec.scrapes.WithLabelValues("scheduled", ResultEmpty)), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(rec.scrapes.WithLabelValues("scheduled", ResultError)), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(rec.scrapes.WithLabelValues("interactive", ResultBusy)), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(rec.scrapes.WithLabelValues("interactive", ResultSuccess)), 1e-9)
	assert.InDelta(t, 2.0, testutil.ToFloat64(rec.eventsIngested.WithLabelValues("scheduled")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(rec.eventsSkipped.WithLabelValues("scheduled")), 1e-9)
	assert.InDelta(t, 4.0, testutil.ToFloat64(rec.eventsSkipped.WithLabelValues("interactive")), 1e-9)
	assert.Equal(t, 5, testutil.CollectAndCount(rec.scrapes, "eventscope_scrapes_total"))
}

func TestRecorder_SourceDisabled(t *testing.T) {
	rec, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	rec.SourceDisabled()
	rec.SourceDisabled()
	assert.InDelta(t, 2.0, testutil.ToFloat64(rec.sourcesDisabled), 1e-9)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register scrape collector")
}

func TestRecorder_Handler(t *testing.T) {
	rec, err := New(nil)
	require.NoError(t, err)
	rec.ScrapeFinished("interactive", domain.ScrapeResult{NewEvents: 1})
	rec.SourceDisabled()

	ts := httptest.NewServer(rec.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `eventscope_scrapes_total{result="success",trigger="interactive"} 1`)
	assert.Contains(t, string(body), "eventscope_sources_disabled_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
