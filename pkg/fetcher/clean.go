package fetcher

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/eventscope/pkg/domain"
)

const shortDescriptionLen = 200

var (
	stripPolicy = bluemonday.StrictPolicy()
	spacesRe    = regexp.MustCompile(`\s+`)
)

// cleanText strips markup, unescapes entities and collapses whitespace
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// shorten cuts s to at most n runes on a word boundary and adds an ellipsis
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)[:n]
	cut := strings.LastIndexFunc(string(runes), unicode.IsSpace)
	if cut <= 0 {
		return string(runes) + "…"
	}
	return strings.TrimSpace(string(runes)[:cut]) + "…"
}

// slug turns a title into a lowercase dash separated fragment
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// resolveURL makes ref absolute against base, empty or unparsable refs give an empty string
func resolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// finalize cleans up a candidate and makes sure it has a stable provenance URL.
// Candidates without a title are dropped.
func finalize(c domain.CandidateEvent, base *url.URL) (domain.CandidateEvent, bool) {
	c.Title = cleanText(c.Title)
	if c.Title == "" {
		return c, false
	}
	c.Description = cleanText(c.Description)
	c.ShortDescription = cleanText(c.ShortDescription)
	if c.ShortDescription == "" && c.Description != "" {
		c.ShortDescription = shorten(c.Description, shortDescriptionLen)
	}
	if c.SourceURL == "" {
		c.SourceURL = pageAnchor(base, c.Title)
	}
	return c, true
}

// pageAnchor is the page URL with the title slug as fragment
func pageAnchor(base *url.URL, title string) string {
	page := *base
	page.Fragment = slug(title)
	page.RawFragment = ""
	return page.String()
}

// distinctSourceURLs gives every candidate of one page its own provenance URL.
// Listing pages often set each event's url to the listing itself or to a shared
// ticket page; such urls would make distinct events look like duplicates,
// so they are replaced with the page anchor of the title.
func distinctSourceURLs(cands []domain.CandidateEvent, base *url.URL) {
	page := stripFragment(base.String())
	seen := make(map[string]int, len(cands))
	for _, c := range cands {
		seen[c.SourceURL]++
	}
	for i := range cands {
		if seen[cands[i].SourceURL] > 1 || stripFragment(cands[i].SourceURL) == page {
			cands[i].SourceURL = pageAnchor(base, cands[i].Title)
		}
	}
}

// stripFragment drops the fragment of an absolute url, unparsable input is returned as is
func stripFragment(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	u.Fragment, u.RawFragment = "", ""
	return u.String()
}
