// Package dedup filters freshly extracted candidates against records that already exist.
//
// A candidate is a duplicate when its source URL equals the source URL of an existing queue entry, or when its
// normalized title (trimmed, lowercased) equals the title of an existing queue entry or published event.
// Matching is exact on purpose: a missed duplicate is acceptable, dropping a distinct event is not.
// Scope (per-user or global) is decided by whoever loads the existing records.
package dedup

import (
	"strings"

	"github.com/umputun/eventscope/pkg/domain"
)

// FilterNew returns candidates that match none of the existing queue entries or published events.
// Duplicates within candidates are dropped too, keeping the first occurrence. Input order is preserved.
func FilterNew(candidates []domain.CandidateEvent, queue, published []domain.DedupKey) []domain.CandidateEvent {
	urls := make(map[string]struct{}, len(queue))
	titles := make(map[string]struct{}, len(queue)+len(published))
	for _, q := range queue {
		addKey(urls, q.SourceURL)
		addKey(titles, NormalizeTitle(q.Title))
	}
	for _, p := range published {
		addKey(titles, NormalizeTitle(p.Title))
	}

	res := make([]domain.CandidateEvent, 0, len(candidates))
	for _, c := range candidates {
		title := NormalizeTitle(c.Title)
		if hasKey(urls, c.SourceURL) || hasKey(titles, title) {
			continue
		}
		res = append(res, c)
		addKey(urls, c.SourceURL)
		addKey(titles, title)
	}
	return res
}

// NormalizeTitle trims surrounding whitespace and lowercases the title
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// empty keys never match, a missing URL or title is not evidence of a duplicate
func addKey(set map[string]struct{}, key string) {
	if key == "" {
		return
	}
	set[key] = struct{}{}
}

func hasKey(set map[string]struct{}, key string) bool {
	if key == "" {
		return false
	}
	_, ok := set[key]
	return ok
}
