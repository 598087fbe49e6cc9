// Package terms turns free-text search input into a structured filter.
//
// Recognition is greedy and left-to-right over a closed grammar:
//
//	between N and M [unit]     range on unit field (default price)
//	from N to M [unit]         same as between
//	under|below|max|... N      upper bound
//	over|above|min|... N       lower bound
//	N bed|bath, Nbed           exact count; "N+" makes it a lower bound
//	apartment|house|condo|...  type
//	in|near|around|at PLACE    location (up to MaxLocationWords words)
//	Capitalized Words          location, when the caller kept casing
//
// Tokens consumed by one pattern are never reconsidered; anything left
// becomes a free keyword. Keywords are deduplicated and only the first
// filter.MaxKeywords are kept; later ones are dropped. Repeated predicates
// on a field resolve last-write-wins (see filter.Builder).
//
// Exact tokens are emitted in Canonical form, so record values passed
// through Canonical can be compared against them directly.
package terms

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/smartprop/internal/domain"
	"github.com/kailas-cloud/smartprop/internal/domain/property"
	"github.com/kailas-cloud/smartprop/internal/domain/search/filter"
)

// Generate extracts a filter from a query. It is deterministic and total
// over valid UTF-8; an empty query yields an empty filter.
func Generate(query string) (filter.Filter, error) {
	if !utf8.ValidString(query) {
		return filter.Filter{}, domain.NewInvalidInput("query is not valid UTF-8 text")
	}
	p := parser{toks: tokenize(normalize(query)), b: filter.NewBuilder()}
	p.run()
	return p.b.Build(), nil
}

// MustGenerate is like Generate but panics on invalid input.
func MustGenerate(query string) filter.Filter {
	f, err := Generate(query)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	toks []token
	b    *filter.Builder
}

// rule tries to recognize a pattern at position i and returns the number of
// tokens consumed, or 0.
type rule func(p *parser, i int) int

var rules = []rule{
	(*parser).twoSidedRange,
	(*parser).qualifiedBound,
	(*parser).count,
	(*parser).propertyType,
	(*parser).prepositionLocation,
	(*parser).capitalizedLocation,
}

func (p *parser) run() {
	for i := 0; i < len(p.toks); {
		n := 0
		for _, r := range rules {
			if n = r(p, i); n > 0 {
				break
			}
		}
		if n == 0 {
			p.b.AddKeyword(p.toks[i].text)
			n = 1
		}
		i += n
	}
}

func (p *parser) at(i int) (token, bool) {
	if i < 0 || i >= len(p.toks) {
		return token{}, false
	}
	return p.toks[i], true
}

// amount reads a number at i plus an optional unit word after it, returning
// the value, the field it applies to ("" when no unit was given) and the
// tokens consumed.
func (p *parser) amount(i int) (float64, string, int) {
	t, ok := p.at(i)
	if !ok || !t.isNum {
		return 0, "", 0
	}
	if t.unit != "" {
		return t.num, t.unit, 1
	}
	if next, ok := p.at(i + 1); ok {
		if field, ok := units[next.text]; ok {
			return t.num, field, 2
		}
	}
	return t.num, "", 1
}

// twoSidedRange: "between N and M [unit]", "from N to M [unit]".
func (p *parser) twoSidedRange(i int) int {
	t, _ := p.at(i)
	if _, ok := rangeOpeners[t.text]; !ok {
		return 0
	}
	lo, loField, n1 := p.amount(i + 1)
	if n1 == 0 {
		return 0
	}
	joiner, ok := p.at(i + 1 + n1)
	if !ok {
		return 0
	}
	if _, ok := rangeJoiners[joiner.text]; !ok {
		return 0
	}
	hi, hiField, n2 := p.amount(i + 2 + n1)
	if n2 == 0 {
		return 0
	}
	field := firstNonEmpty(hiField, loField, property.FieldPrice)
	p.b.SetRange(field, filter.Between(lo, hi))
	return 2 + n1 + n2
}

// qualifiedBound: "under 500k", "at least 2 baths".
func (p *parser) qualifiedBound(i int) int {
	for _, q := range qualifiers {
		if !p.phraseAt(i, q.words) {
			continue
		}
		v, field, n := p.amount(i + len(q.words))
		if n == 0 {
			return 0
		}
		field = firstNonEmpty(field, property.FieldPrice)
		if q.bound == boundMin {
			p.b.SetMin(field, v)
		} else {
			p.b.SetMax(field, v)
		}
		return len(q.words) + n
	}
	return 0
}

// count: "3 bedrooms", "2bath", "3+ br".
func (p *parser) count(i int) int {
	t, _ := p.at(i)
	v, field, n := p.amount(i)
	if n == 0 || field == "" {
		return 0
	}
	if t.plus {
		p.b.SetRange(field, filter.AtLeast(v))
	} else {
		p.b.SetRange(field, filter.Exactly(v))
	}
	return n
}

func (p *parser) propertyType(i int) int {
	t, _ := p.at(i)
	canonical, ok := propertyTypes[t.text]
	if !ok {
		return 0
	}
	p.b.SetMatch(property.FieldType, canonical)
	return 1
}

// prepositionLocation: "in austin", "near san marcos".
func (p *parser) prepositionLocation(i int) int {
	t, _ := p.at(i)
	if _, ok := locationPrepositions[t.text]; !ok {
		return 0
	}
	words := p.placeWords(i+1, func(token) bool { return true })
	if len(words) == 0 {
		return 0
	}
	p.b.SetMatch(property.FieldLocation, strings.Join(words, " "))
	return 1 + len(words)
}

// capitalizedLocation: "apartment Austin", "condo New York". The first token
// is skipped since sentence-initial capitals carry no signal.
func (p *parser) capitalizedLocation(i int) int {
	if i == 0 {
		return 0
	}
	words := p.placeWords(i, token.isCapitalized)
	if len(words) == 0 {
		return 0
	}
	p.b.SetMatch(property.FieldLocation, strings.Join(words, " "))
	return len(words)
}

// placeWords collects up to MaxLocationWords alphabetic, unreserved tokens
// starting at i that satisfy accept.
func (p *parser) placeWords(i int, accept func(token) bool) []string {
	var words []string
	for j := i; j < len(p.toks) && len(words) < MaxLocationWords; j++ {
		t := p.toks[j]
		if !t.isWord() || isReserved(t.text) || !accept(t) {
			break
		}
		words = append(words, t.text)
	}
	return words
}

func (p *parser) phraseAt(i int, words []string) bool {
	for k, w := range words {
		t, ok := p.at(i + k)
		if !ok || t.text != w {
			return false
		}
	}
	return true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
