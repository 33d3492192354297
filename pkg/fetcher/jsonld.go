package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/eventscope/pkg/domain"
)

// eventTypes lists schema.org Event subtypes without the "Event" suffix
var eventTypes = map[string]bool{"Festival": true, "Event": true}

// date layouts seen in JSON-LD startDate/endDate, offset-less ones are read in the fetcher location
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// fromJSONLD extracts schema.org Event objects from application/ld+json blocks
func (f *HTTPFetcher) fromJSONLD(body []byte, base *url.URL) ([]domain.CandidateEvent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var res []domain.CandidateEvent
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &data); err != nil {
			lgr.Printf("[DEBUG] skip invalid json-ld block on %s: %v", base, err)
			return
		}
		for _, obj := range collectEvents(data) {
			if c, ok := finalize(f.eventFromJSONLD(obj, base), base); ok {
				res = append(res, c)
			}
		}
	})
	distinctSourceURLs(res, base)
	return res, nil
}

// collectEvents walks a JSON-LD value and returns every object typed as an Event.
// Handles top-level arrays, @graph containers and ItemList wrappers.
func collectEvents(v interface{}) []map[string]interface{} {
	var res []map[string]interface{}
	switch val := v.(type) {
	case []interface{}:
		for _, item := range val {
			res = append(res, collectEvents(item)...)
		}
	case map[string]interface{}:
		if isEvent(val["@type"]) {
			return append(res, val)
		}
		for _, key := range []string{"@graph", "itemListElement", "item", "subEvent", "event"} {
			if nested, ok := val[key]; ok {
				res = append(res, collectEvents(nested)...)
			}
		}
	}
	return res
}

// isEvent checks @type, which may be a string or an array of strings
func isEvent(t interface{}) bool {
	for _, typ := range stringList(t) {
		typ = strings.TrimPrefix(typ, "schema:")
		if i := strings.LastIndex(typ, "/"); i >= 0 {
			typ = typ[i+1:]
		}
		if eventTypes[typ] || strings.HasSuffix(typ, "Event") {
			return true
		}
	}
	return false
}

func (f *HTTPFetcher) eventFromJSONLD(obj map[string]interface{}, base *url.URL) domain.CandidateEvent {
	c := domain.CandidateEvent{
		Title:       str(obj["name"]),
		Description: str(obj["description"]),
		StartAt:     f.parseDate(str(obj["startDate"])),
		EndAt:       f.parseDate(str(obj["endDate"])),
		ImageURL:    resolveURL(base, imageURL(obj["image"])),
		SourceURL:   resolveURL(base, str(obj["url"])),
		Tags:        keywords(obj["keywords"]),
	}
	c.Address, c.City, c.Country = location(obj["location"])
	c.TicketURL, c.Price = offers(obj["offers"])
	c.TicketURL = resolveURL(base, c.TicketURL)
	return c
}

func (f *HTTPFetcher) parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, f.location); err == nil {
			return &t
		}
	}
	lgr.Printf("[DEBUG] unsupported date format %q", s)
	return nil
}

// location returns address, city and country from a Place, a list of places or a plain string
func location(v interface{}) (address, city, country string) {
	switch val := v.(type) {
	case string:
		return val, "", ""
	case []interface{}:
		if len(val) > 0 {
			return location(val[0])
		}
	case map[string]interface{}:
		name := str(val["name"])
		switch addr := val["address"].(type) {
		case string:
			address = addr
		case map[string]interface{}:
			address = str(addr["streetAddress"])
			city = str(addr["addressLocality"])
			country = str(addr["addressCountry"])
		}
		switch {
		case address == "":
			address = name
		case name != "" && !strings.Contains(address, name):
			address = name + ", " + address
		}
	}
	return address, city, country
}

// offers returns the ticket URL and a price string from the first offer
func offers(v interface{}) (ticketURL, price string) {
	switch val := v.(type) {
	case []interface{}:
		if len(val) > 0 {
			return offers(val[0])
		}
	case map[string]interface{}:
		ticketURL = str(val["url"])
		amount := str(val["price"])
		if amount == "" {
			amount = str(val["lowPrice"])
		}
		if amount != "" {
			price = strings.TrimSpace(amount + " " + str(val["priceCurrency"]))
		}
	}
	return ticketURL, price
}

// imageURL handles plain strings, arrays and ImageObject values
func imageURL(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		if len(val) > 0 {
			return imageURL(val[0])
		}
	case map[string]interface{}:
		if u := str(val["url"]); u != "" {
			return u
		}
		return str(val["contentUrl"])
	}
	return ""
}

// keywords accepts a comma separated string or an array
func keywords(v interface{}) []string {
	var raw []string
	if s, ok := v.(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = stringList(v)
	}
	var res []string
	for _, k := range raw {
		if k = strings.TrimSpace(k); k != "" {
			res = append(res, k)
		}
	}
	return res
}

func stringList(v interface{}) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []interface{}:
		res := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				res = append(res, s)
			}
		}
		return res
	}
	return nil
}

// str converts scalar JSON values to string, numbers keep their shortest form
func str(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]interface{}:
		if s, ok := val["name"].(string); ok { // Country, Organization and similar wrappers
			return strings.TrimSpace(s)
		}
	}
	return ""
}
