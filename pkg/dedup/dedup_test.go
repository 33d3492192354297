package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/eventscope/pkg/domain"
)

func titles(events []domain.CandidateEvent) []string {
	res := make([]string, 0, len(events))
	for _, e := range events {
		res = append(res, e.Title)
	}
	return res
}

func TestFilterNew(t *testing.T) {
	candidates := []domain.CandidateEvent{
		{Title: "jazz night ", SourceURL: "https://example.com/e/1"},
		{Title: "Blues Evening", SourceURL: "https://example.com/e/2"},
		{Title: "Totally New", SourceURL: "https://example.com/e/3"},
		{Title: "Renamed Event", SourceURL: "https://example.com/e/4"},
		{Title: "  OPEN AIR  ", SourceURL: "https://example.com/e/5"},
	}
	queue := []domain.DedupKey{
		{Title: "Something else", SourceURL: "https://example.com/e/4"},
		{Title: "open air", SourceURL: "https://other.com/x"},
	}
	published := []domain.DedupKey{{Title: "Jazz Night"}}

	res := FilterNew(candidates, queue, published)
	assert.Equal(t, []string{"Blues Evening", "Totally New"}, titles(res))
}

func TestFilterNew_URLMatchIgnoresTitle(t *testing.T) {
	candidates := []domain.CandidateEvent{{Title: "Brand new title", SourceURL: "https://example.com/e/1"}}
	queue := []domain.DedupKey{{Title: "Old title", SourceURL: "https://example.com/e/1"}}
	assert.Empty(t, FilterNew(candidates, queue, nil))
}

func TestFilterNew_PublishedURLNotUsed(t *testing.T) {
	// published events contribute titles only
	candidates := []domain.CandidateEvent{{Title: "Brand new title", SourceURL: "https://example.com/e/1"}}
	published := []domain.DedupKey{{Title: "Old title", SourceURL: "https://example.com/e/1"}}
	assert.Len(t, FilterNew(candidates, nil, published), 1)
}

func TestFilterNew_EmptyKeysNeverMatch(t *testing.T) {
	candidates := []domain.CandidateEvent{
		{Title: "First", SourceURL: ""},
		{Title: "Second", SourceURL: ""},
		{Title: "", SourceURL: "https://example.com/a"},
		{Title: "  ", SourceURL: "https://example.com/b"},
	}
	queue := []domain.DedupKey{{Title: "", SourceURL: ""}}
	published := []domain.DedupKey{{Title: " "}}

	res := FilterNew(candidates, queue, published)
	assert.Len(t, res, 4)
}

func TestFilterNew_InBatchDuplicates(t *testing.T) {
	candidates := []domain.CandidateEvent{
		{Title: "Konzert", SourceURL: "https://example.com/1"},
		{Title: "konzert ", SourceURL: "https://example.com/2"},
		{Title: "Lesung", SourceURL: "https://example.com/1"},
		{Title: "Markt", SourceURL: "https://example.com/3"},
	}
	res := FilterNew(candidates, nil, nil)
	assert.Equal(t, []string{"Konzert", "Markt"}, titles(res))
}

func TestFilterNew_PreservesOrderAndData(t *testing.T) {
	candidates := []domain.CandidateEvent{
		{Title: "C", SourceURL: "u3", City: "Berlin"},
		{Title: "A", SourceURL: "u1", Tags: []string{"x"}},
		{Title: "B", SourceURL: "u2"},
	}
	res := FilterNew(candidates, nil, nil)
	require.Len(t, res, 3)
	assert.Equal(t, candidates, res)
}

func TestFilterNew_Empty(t *testing.T) {
	res := FilterNew(nil, []domain.DedupKey{{Title: "x"}}, nil)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "jazz night", NormalizeTitle("  Jazz Night \t"))
	assert.Equal(t, "straßenfest", NormalizeTitle("Straßenfest"))
	assert.Equal(t, "öffnung", NormalizeTitle("ÖFFNUNG"))
}
