package search

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/smartprop/internal/domain/property"
	"github.com/kailas-cloud/smartprop/internal/domain/search/filter"
	"github.com/kailas-cloud/smartprop/internal/domain/search/terms"
)

// Default score weights. A satisfied structural predicate is worth more than
// the most keywords a filter can hold, so field matches always outrank
// keyword-only relevance and keyword count only breaks ties.
const (
	DefaultStructuralWeight = 100.0
	DefaultKeywordWeight    = 1.0
)

// Weights are the score multipliers for satisfied predicates.
type Weights struct {
	Structural float64
	Keyword    float64
}

// DefaultWeights returns the default score weights.
func DefaultWeights() Weights {
	return Weights{Structural: DefaultStructuralWeight, Keyword: DefaultKeywordWeight}
}

// Validate checks that one structural match outweighs a full set of keywords.
func (w Weights) Validate() error {
	if w.Keyword < 0 {
		return fmt.Errorf("keyword weight must be non-negative, got %v", w.Keyword)
	}
	if w.Structural <= float64(filter.MaxKeywords)*w.Keyword {
		return fmt.Errorf(
			"structural weight %v must exceed %d x keyword weight %v",
			w.Structural, filter.MaxKeywords, w.Keyword,
		)
	}
	return nil
}

// matchResult is the per-record evaluation used for sorting.
type matchResult struct {
	record    property.Record
	score     float64
	satisfied bool
}

// GetBestChoice returns the records that satisfy every structural predicate
// of f, best match first. Ties keep input order. Missing fields never
// disqualify a record; free keywords only affect the score.
func GetBestChoice(properties []property.Record, f filter.Filter, w Weights) []property.Record {
	results := make([]matchResult, 0, len(properties))
	for _, rec := range properties {
		if m := evaluate(rec, f, w); m.satisfied {
			results = append(results, m)
		}
	}

	slices.SortStableFunc(results, func(a, b matchResult) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]property.Record, len(results))
	for i, m := range results {
		out[i] = m.record
	}
	return out
}

func evaluate(rec property.Record, f filter.Filter, w Weights) matchResult {
	structural := 0

	for _, field := range f.RangeFields() {
		r, _ := f.Range(field)
		v, ok := rec.Number(field)
		if !ok {
			continue
		}
		if !r.Contains(v) {
			return matchResult{record: rec}
		}
		structural++
	}

	for _, field := range f.MatchFields() {
		want, _ := f.Match(field)
		present, matched := matchText(rec, property.Aliases(field), want)
		if !present {
			continue
		}
		if !matched {
			return matchResult{record: rec}
		}
		structural++
	}

	keywords := countKeywords(rec, f.Keywords())

	return matchResult{
		record:    rec,
		score:     float64(structural)*w.Structural + float64(keywords)*w.Keyword,
		satisfied: true,
	}
}

// matchText reports whether any alias field is present and whether any
// present value contains want. Both sides are compared in canonical form, so
// punctuation, casing and type synonyms do not matter.
func matchText(rec property.Record, fields []string, want string) (present, matched bool) {
	want = terms.Canonical(want)
	for _, field := range fields {
		s, ok := rec.Text(field)
		if !ok {
			continue
		}
		present = true
		if strings.Contains(terms.Canonical(s), want) {
			return true, true
		}
	}
	return present, false
}

func countKeywords(rec property.Record, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	var sb strings.Builder
	for _, field := range property.KeywordFields {
		for _, s := range rec.Texts(field) {
			sb.WriteString(strings.ToLower(s))
			sb.WriteByte('\n')
		}
	}
	text := sb.String()

	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}
