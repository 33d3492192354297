package fetcher

import (
	"bytes"
	"net/url"

	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/eventscope/pkg/domain"
)

const pageDescriptionLen = 1000

// fromPageMetadata treats a page without structured events as a single event page.
// It yields one candidate only if trafilatura finds both a title and a date.
func (f *HTTPFetcher) fromPageMetadata(body []byte, base *url.URL) []domain.CandidateEvent {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     base,
	}

	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil || result == nil {
		lgr.Printf("[DEBUG] no page metadata for %s: %v", base, err)
		return []domain.CandidateEvent{}
	}

	meta := result.Metadata
	if meta.Title == "" || meta.Date.IsZero() {
		return []domain.CandidateEvent{}
	}

	date := meta.Date
	c := domain.CandidateEvent{
		Title:       meta.Title,
		Description: meta.Description,
		StartAt:     &date,
		ImageURL:    resolveURL(base, meta.Image),
		Tags:        append(append([]string{}, meta.Categories...), meta.Tags...),
		SourceURL:   base.String(),
	}
	if c.Description == "" {
		c.Description = shorten(result.ContentText, pageDescriptionLen)
	}

	if cand, ok := finalize(c, base); ok {
		return []domain.CandidateEvent{cand}
	}
	return []domain.CandidateEvent{}
}
