package filter

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// MaxKeywords is the maximum number of free keywords kept per filter.
// Keywords past the cap are dropped.
const MaxKeywords = 32

// Filter is the structured form of a search query: numeric ranges and
// exact/contains tokens keyed by field, plus free keywords. Immutable once built.
type Filter struct {
	ranges   map[string]Range
	exact    map[string]string
	keywords []string
}

// Range returns the range predicate for a field.
func (f Filter) Range(field string) (Range, bool) {
	r, ok := f.ranges[field]
	return r, ok
}

// Match returns the exact/contains token for a field.
func (f Filter) Match(field string) (string, bool) {
	m, ok := f.exact[field]
	return m, ok
}

// RangeFields returns the fields with range predicates, sorted.
func (f Filter) RangeFields() []string { return sortedKeys(f.ranges) }

// MatchFields returns the fields with exact predicates, sorted.
func (f Filter) MatchFields() []string { return sortedKeys(f.exact) }

// Keywords returns the free keywords in query order.
func (f Filter) Keywords() []string { return slices.Clone(f.keywords) }

// Structural returns the number of range and exact predicates.
func (f Filter) Structural() int { return len(f.ranges) + len(f.exact) }

// IsEmpty reports whether the filter has no predicates and no keywords.
func (f Filter) IsEmpty() bool {
	return f.Structural() == 0 && len(f.keywords) == 0
}

// Equal reports whether two filters carry the same predicates and keywords.
func (f Filter) Equal(o Filter) bool {
	if len(f.ranges) != len(o.ranges) || len(f.exact) != len(o.exact) {
		return false
	}
	for k, r := range f.ranges {
		or, ok := o.ranges[k]
		if !ok || !r.Equal(or) {
			return false
		}
	}
	for k, m := range f.exact {
		if om, ok := o.exact[k]; !ok || om != m {
			return false
		}
	}
	return slices.Equal(f.keywords, o.keywords)
}

// MarshalJSON renders the filter for API responses.
func (f Filter) MarshalJSON() ([]byte, error) {
	ranges := make(map[string]Range, len(f.ranges))
	for k, r := range f.ranges {
		ranges[k] = r
	}
	exact := make(map[string]string, len(f.exact))
	for k, m := range f.exact {
		exact[k] = m
	}
	keywords := f.keywords
	if keywords == nil {
		keywords = []string{}
	}
	return json.Marshal(struct {
		Ranges   map[string]Range  `json:"ranges"`
		Exact    map[string]string `json:"exact"`
		Keywords []string          `json:"keywords"`
	}{ranges, exact, keywords})
}

func (f Filter) String() string {
	return fmt.Sprintf("ranges=%v exact=%v keywords=%v", f.ranges, f.exact, f.keywords)
}

// Range is a numeric interval with optional inclusive bounds.
type Range struct {
	min *float64
	max *float64
}

// NewRange validates and creates a Range. At least one bound is required.
func NewRange(lo, hi *float64) (Range, error) {
	if lo == nil && hi == nil {
		return Range{}, fmt.Errorf("at least one range bound is required")
	}
	if lo != nil && hi != nil && *lo > *hi {
		return Range{}, fmt.Errorf("min %v is greater than max %v", *lo, *hi)
	}
	return Range{min: clonePtr(lo), max: clonePtr(hi)}, nil
}

// AtLeast returns the range [v, +inf).
func AtLeast(v float64) Range { return Range{min: &v} }

// AtMost returns the range (-inf, v].
func AtMost(v float64) Range { return Range{max: &v} }

// Exactly returns the range [v, v].
func Exactly(v float64) Range {
	lo, hi := v, v
	return Range{min: &lo, max: &hi}
}

// Between returns [lo, hi], swapping the bounds if given in reverse.
func Between(lo, hi float64) Range {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{min: &lo, max: &hi}
}

// Min returns the lower bound.
func (r Range) Min() (float64, bool) {
	if r.min == nil {
		return 0, false
	}
	return *r.min, true
}

// Max returns the upper bound.
func (r Range) Max() (float64, bool) {
	if r.max == nil {
		return 0, false
	}
	return *r.max, true
}

// Contains reports whether v lies within the inclusive bounds.
func (r Range) Contains(v float64) bool {
	if r.min != nil && v < *r.min {
		return false
	}
	if r.max != nil && v > *r.max {
		return false
	}
	return true
}

// Equal reports whether both ranges have the same bounds.
func (r Range) Equal(o Range) bool {
	return ptrEqual(r.min, o.min) && ptrEqual(r.max, o.max)
}

// MarshalJSON renders {"min":..,"max":..}, omitting absent bounds.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min *float64 `json:"min,omitempty"`
		Max *float64 `json:"max,omitempty"`
	}{r.min, r.max})
}

func (r Range) String() string {
	lo, hi := "-inf", "+inf"
	if r.min != nil {
		lo = fmt.Sprint(*r.min)
	}
	if r.max != nil {
		hi = fmt.Sprint(*r.max)
	}
	return "[" + lo + ", " + hi + "]"
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
