// Package fetcher downloads an event listing page and turns it into candidate events.
// Feeds (RSS, Atom, JSON feed) produce one candidate per item, HTML pages are scanned for
// schema.org Event objects in JSON-LD, and a page without structured events falls back
// to its own metadata as a single candidate.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"github.com/umputun/eventscope/pkg/domain"
)

// HTTPFetcher fetches source pages over HTTP and extracts candidate events
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	location    *time.Location
}

// Params defines fetcher parameters
type Params struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	Location    *time.Location // zone for event dates without offset, time.Local if nil
}

// ErrBodyTooLarge is returned when a page exceeds the configured size limit
var ErrBodyTooLarge = errors.New("response body too large")

// NewHTTPFetcher creates a new fetcher
func NewHTTPFetcher(params Params) *HTTPFetcher {
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.UserAgent == "" {
		params.UserAgent = "Eventscope/1.0"
	}
	if params.MaxBodySize <= 0 {
		params.MaxBodySize = 10 * 1024 * 1024
	}
	if params.Location == nil {
		params.Location = time.Local
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:   params.UserAgent,
		maxBodySize: params.MaxBodySize,
		location:    params.Location,
	}
}

// Fetch retrieves pageURL and returns the candidate events found on it.
// An empty result with nil error means the page was fine but listed nothing.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string, onProgress domain.ProgressFunc) ([]domain.CandidateEvent, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", pageURL)
	}

	onProgress.Report(domain.PhaseFetch, "loading "+pageURL, 0)
	body, contentType, err := f.download(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	lgr.Printf("[DEBUG] fetched %s, %d bytes, %s", pageURL, len(body), contentType)

	onProgress.Report(domain.PhaseParse, "parsing page", 0)
	var candidates []domain.CandidateEvent
	if gofeed.DetectFeedType(bytes.NewReader(body)) != gofeed.FeedTypeUnknown {
		if candidates, err = f.fromFeed(body, base); err != nil {
			return nil, err
		}
		onProgress.Report(domain.PhaseExtract, fmt.Sprintf("found %d feed items", len(candidates)), len(candidates))
		return candidates, nil
	}

	// html path, feeds carry their own encoding declaration handled by gofeed
	utf8Body, err := decodeCharset(body, contentType)
	if err != nil {
		return nil, err
	}

	candidates, err = f.fromJSONLD(utf8Body, base)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		onProgress.Report(domain.PhaseExtract, fmt.Sprintf("found %d structured events", len(candidates)), len(candidates))
		return candidates, nil
	}

	candidates = f.fromPageMetadata(utf8Body, base)
	onProgress.Report(domain.PhaseExtract, fmt.Sprintf("found %d events in page metadata", len(candidates)), len(candidates))
	return candidates, nil
}

// download performs the GET request and returns the size-limited body and its content type
func (f *HTTPFetcher) download(ctx context.Context, pageURL string) (body []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch URL %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, pageURL)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, "", fmt.Errorf("%s exceeds %d bytes: %w", pageURL, f.maxBodySize, ErrBodyTooLarge)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// decodeCharset converts the page to UTF-8 using the content type header or the meta charset
func decodeCharset(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	res, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	return res, nil
}
