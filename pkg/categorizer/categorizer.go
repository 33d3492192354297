// Package categorizer assigns an event category by weighted keyword scoring over an ordered rule table.
//
// Each rule counts how many of its patterns match the lowercased "title description" text. A matching rule
// scores weight*matches plus a title bonus for every pattern that also matches the title alone. The highest
// score wins; on equal scores the earlier rule wins, so specific categories are declared before generic ones.
package categorizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/umputun/eventscope/pkg/domain"
)

// TitleBonus is added per pattern matching the title alone
const TitleBonus = 3

// Rule maps keyword patterns to a category. Patterns are regular expressions matched case-insensitively,
// umlaut variants have to be spelled out explicitly ("führung|fuehrung").
type Rule struct {
	Category domain.Category
	Patterns []string
	Weight   int
}

// Categorizer classifies free text using an immutable rule table
type Categorizer struct {
	rules []compiledRule
}

type compiledRule struct {
	category domain.Category
	weight   int
	patterns []*regexp.Regexp
}

// Score is the result of a single rule evaluation
type Score struct {
	Category  domain.Category
	Matches   int
	TitleHits int
	Total     int
}

// New compiles the rule table. The table is copied, later changes to rules have no effect.
func New(rules []Rule) (*Categorizer, error) {
	res := &Categorizer{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		if r.Category == "" {
			return nil, fmt.Errorf("rule %d: empty category", i)
		}
		if r.Weight <= 0 {
			return nil, fmt.Errorf("rule %d (%s): weight must be positive", i, r.Category)
		}
		cr := compiledRule{category: r.Category, weight: r.Weight, patterns: make([]*regexp.Regexp, 0, len(r.Patterns))}
		for _, p := range r.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): compile pattern %q: %w", i, r.Category, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		res.rules = append(res.rules, cr)
	}
	return res, nil
}

// MustNew is New for static tables, panics on invalid rules
func MustNew(rules []Rule) *Categorizer {
	c, err := New(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Categorize returns the best scoring category for the text, or defaultCategory if nothing matches.
// An empty defaultCategory means domain.CategoryOther.
func (c *Categorizer) Categorize(title, description string, defaultCategory domain.Category) domain.Category {
	if defaultCategory == "" {
		defaultCategory = domain.CategoryOther
	}

	best, bestScore := defaultCategory, 0
	for _, s := range c.Scores(title, description) {
		if s.Total > bestScore { // strictly greater keeps the earlier rule on ties
			best, bestScore = s.Category, s.Total
		}
	}
	return best
}

// Scores evaluates every rule with at least one match, in table order
func (c *Categorizer) Scores(title, description string) []Score {
	lowTitle := strings.ToLower(title)
	text := lowTitle + " " + strings.ToLower(description)

	var res []Score
	for _, r := range c.rules {
		matches, titleHits := 0, 0
		for _, re := range r.patterns {
			if !re.MatchString(text) {
				continue
			}
			matches++
			if re.MatchString(lowTitle) {
				titleHits++
			}
		}
		if matches == 0 {
			continue
		}
		res = append(res, Score{
			Category:  r.category,
			Matches:   matches,
			TitleHits: titleHits,
			Total:     r.weight*matches + TitleBonus*titleHits,
		})
	}
	return res
}
