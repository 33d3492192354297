package fetcher

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/eventscope/pkg/domain"
)

// fromFeed converts every feed item into a candidate, using the item link as provenance
func (f *HTTPFetcher) fromFeed(body []byte, base *url.URL) ([]domain.CandidateEvent, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]domain.CandidateEvent, 0, len(feed.Items))
	for _, item := range feed.Items {
		c := domain.CandidateEvent{
			Title:       item.Title,
			Description: item.Description,
			SourceURL:   resolveURL(base, item.Link),
			Tags:        item.Categories,
		}
		if c.Description == "" {
			c.Description = item.Content
		}

		// event feeds put the event date into pubDate more often than not
		switch {
		case item.PublishedParsed != nil:
			t := *item.PublishedParsed
			c.StartAt = &t
		case item.UpdatedParsed != nil:
			t := *item.UpdatedParsed
			c.StartAt = &t
		}

		if item.Image != nil {
			c.ImageURL = resolveURL(base, item.Image.URL)
		}
		for _, enc := range item.Enclosures {
			if c.ImageURL == "" && enc != nil && strings.HasPrefix(enc.Type, "image/") {
				c.ImageURL = resolveURL(base, enc.URL)
			}
		}

		if cand, ok := finalize(c, base); ok {
			res = append(res, cand)
		}
	}
	distinctSourceURLs(res, base)
	return res, nil
}
