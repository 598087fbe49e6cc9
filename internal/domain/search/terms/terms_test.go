package terms

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/smartprop/internal/domain"
	"github.com/kailas-cloud/smartprop/internal/domain/search/filter"
)

func assertRange(t *testing.T, f filter.Filter, field string, want filter.Range) {
	t.Helper()
	got, ok := f.Range(field)
	if !ok {
		t.Fatalf("expected range on %q, filter: %s", field, f)
	}
	if !got.Equal(want) {
		t.Errorf("range %q: got %s, want %s", field, got, want)
	}
}

func assertMatch(t *testing.T, f filter.Filter, field, want string) {
	t.Helper()
	got, ok := f.Match(field)
	if !ok {
		t.Fatalf("expected match on %q, filter: %s", field, f)
	}
	if got != want {
		t.Errorf("match %q: got %q, want %q", field, got, want)
	}
}

func assertKeywords(t *testing.T, f filter.Filter, want ...string) {
	t.Helper()
	got := strings.Join(f.Keywords(), " ")
	if got != strings.Join(want, " ") {
		t.Errorf("keywords: got %q, want %q", got, strings.Join(want, " "))
	}
}

func TestGenerate_AustinScenario(t *testing.T) {
	f := MustGenerate("3 bedroom apartment under 500000 in austin")

	assertRange(t, f, "bedrooms", filter.Exactly(3))
	assertMatch(t, f, "type", "apartment")
	assertRange(t, f, "price", filter.AtMost(500000))
	assertMatch(t, f, "location", "austin")
	assertKeywords(t, f)
	if f.Structural() != 4 {
		t.Errorf("expected 4 structural predicates, got %d", f.Structural())
	}
}

func TestGenerate_EmptyAndWhitespace(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n", "?!.,"} {
		f, err := Generate(q)
		if err != nil {
			t.Fatalf("Generate(%q): unexpected error: %v", q, err)
		}
		if !f.IsEmpty() {
			t.Errorf("Generate(%q): expected empty filter, got %s", q, f)
		}
	}
}

func TestGenerate_UnrecognizedBecomeKeywords(t *testing.T) {
	f := MustGenerate("the quiet street with a pool")

	if f.Structural() != 0 {
		t.Errorf("expected no structural predicates, got %s", f)
	}
	assertKeywords(t, f, "the", "quiet", "street", "with", "a", "pool")
}

func TestGenerate_DefensiveNormalization(t *testing.T) {
	f := MustGenerate("  3 BEDROOM Apartment UNDER $500,000  ")

	assertRange(t, f, "bedrooms", filter.Exactly(3))
	assertMatch(t, f, "type", "apartment")
	assertRange(t, f, "price", filter.AtMost(500000))
}

func TestGenerate_InvalidUTF8(t *testing.T) {
	_, err := Generate("apartment \xff\xfe")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	queries := []string{
		"",
		"pool",
		"2 bath house over 300k near round rock with garden",
		"between 200000 and 400000 condo",
	}
	for _, q := range queries {
		a := MustGenerate(q)
		b := MustGenerate(q)
		if !a.Equal(b) {
			t.Errorf("Generate(%q) not idempotent: %s vs %s", q, a, b)
		}
	}
}

func TestGenerate_NumericPatterns(t *testing.T) {
	tests := []struct {
		query string
		field string
		want  filter.Range
	}{
		{"under 500000", "price", filter.AtMost(500000)},
		{"below 450k", "price", filter.AtMost(450000)},
		{"less than 1.5m", "price", filter.AtMost(1500000)},
		{"up to $750,000", "price", filter.AtMost(750000)},
		{"max 900000", "price", filter.AtMost(900000)},
		{"over 200000", "price", filter.AtLeast(200000)},
		{"more than 300k", "price", filter.AtLeast(300000)},
		{"at least 2 baths", "bathrooms", filter.AtLeast(2)},
		{"minimum 4 bedrooms", "bedrooms", filter.AtLeast(4)},
		{"under 3br", "bedrooms", filter.AtMost(3)},
		{"between 200000 and 400000", "price", filter.Between(200000, 400000)},
		{"between 400k and 200k", "price", filter.Between(200000, 400000)},
		{"from 100k to 250k", "price", filter.Between(100000, 250000)},
		{"between 2 and 3 bedrooms", "bedrooms", filter.Between(2, 3)},
		{"3 bedrooms", "bedrooms", filter.Exactly(3)},
		{"3bed", "bedrooms", filter.Exactly(3)},
		{"4 br", "bedrooms", filter.Exactly(4)},
		{"3+ bedrooms", "bedrooms", filter.AtLeast(3)},
		{"2+bath", "bathrooms", filter.AtLeast(2)},
		{"2 bathrooms", "bathrooms", filter.Exactly(2)},
		{"1.5 baths", "bathrooms", filter.Exactly(1.5)},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			f := MustGenerate(tc.query)
			assertRange(t, f, tc.field, tc.want)
			assertKeywords(t, f)
		})
	}
}

func TestGenerate_PropertyTypeVocabulary(t *testing.T) {
	tests := map[string]string{
		"apartment":   "apartment",
		"apartments":  "apartment",
		"flat":        "apartment",
		"homes":       "house",
		"condominium": "condo",
		"studio":      "studio",
		"townhome":    "townhouse",
		"cabin":       "cabin",
	}
	for word, want := range tests {
		t.Run(word, func(t *testing.T) {
			assertMatch(t, MustGenerate(word), "type", want)
		})
	}
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"Austin, TX":           "austin tx",
		"  San   Antonio ":     "san antonio",
		"Flat":                 "apartment",
		"Garden Apt":           "garden apartment",
		"townhome":             "townhouse",
		"101 Main St., Austin": "101 main st austin",
		"":                     "",
		"?!":                   "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := Canonical(in); got != want {
				t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
			}
		})
	}
}

func TestCanonical_AgreesWithExtractedMatches(t *testing.T) {
	f := MustGenerate("apt in austin tx")
	for _, field := range f.MatchFields() {
		v, _ := f.Match(field)
		if got := Canonical(v); got != v {
			t.Errorf("extracted %s %q is not canonical: %q", field, v, got)
		}
	}
}

func TestGenerate_Location(t *testing.T) {
	tests := []struct {
		query string
		want  string
		kws   []string
	}{
		{"in austin", "austin", nil},
		{"near round rock with pool", "round rock", []string{"with", "pool"}},
		{"house in san antonio under 300k", "san antonio", nil},
		{"around new york city texas", "new york city", []string{"texas"}},
		{"condo New York", "new york", nil},
		{"loft Austin pool", "austin", []string{"pool"}},
		{"condo in NYC", "nyc", nil},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			f := MustGenerate(tc.query)
			assertMatch(t, f, "location", tc.want)
			assertKeywords(t, f, tc.kws...)
		})
	}
}

func TestGenerate_CapitalizedFirstTokenIsNotLocation(t *testing.T) {
	f := MustGenerate("Sunny apartment")
	if _, ok := f.Match("location"); ok {
		t.Errorf("sentence-initial capital should not be a location: %s", f)
	}
	assertKeywords(t, f, "sunny")
}

func TestGenerate_DanglingQualifiersAreKeywords(t *testing.T) {
	f := MustGenerate("under in")
	if f.Structural() != 0 {
		t.Errorf("expected no structural predicates, got %s", f)
	}
	assertKeywords(t, f, "under", "in")
}

func TestGenerate_ConsumedTokensNotReused(t *testing.T) {
	// "500000" is consumed by "under"; it must not also become a keyword.
	f := MustGenerate("under 500000 pool")
	assertRange(t, f, "price", filter.AtMost(500000))
	assertKeywords(t, f, "pool")
}

func TestGenerate_BareNumberIsKeyword(t *testing.T) {
	f := MustGenerate("78701 2nd floor")
	if f.Structural() != 0 {
		t.Errorf("expected no structural predicates, got %s", f)
	}
	assertKeywords(t, f, "78701", "2nd", "floor")
}

// Last-write-wins is a chosen policy: later mentions of a field replace
// earlier ones.
func TestGenerate_LastWriteWins(t *testing.T) {
	t.Run("price same bound", func(t *testing.T) {
		f := MustGenerate("under 300000 or under 500000")
		assertRange(t, f, "price", filter.AtMost(500000))
	})
	t.Run("price opposite bounds merge", func(t *testing.T) {
		f := MustGenerate("over 200000 under 500000")
		assertRange(t, f, "price", filter.Between(200000, 500000))
	})
	t.Run("price contradicting bound drops older", func(t *testing.T) {
		f := MustGenerate("under 200000 over 500000")
		assertRange(t, f, "price", filter.AtLeast(500000))
	})
	t.Run("bedrooms", func(t *testing.T) {
		f := MustGenerate("2 bedrooms or 4 bedrooms")
		assertRange(t, f, "bedrooms", filter.Exactly(4))
	})
	t.Run("type", func(t *testing.T) {
		f := MustGenerate("house or condo")
		assertMatch(t, f, "type", "condo")
	})
	t.Run("location", func(t *testing.T) {
		f := MustGenerate("in dallas or in austin")
		assertMatch(t, f, "location", "austin")
	})
}

func TestGenerate_DuplicateKeywordsCollapse(t *testing.T) {
	f := MustGenerate("pool pool garden pool")
	assertKeywords(t, f, "pool", "garden")
}

func TestGenerate_KeywordCap(t *testing.T) {
	q := strings.Repeat("a b c d e f g h i j k l m n o p q r s t u v w x y z aa bb cc dd ee ff gg hh ", 2)
	f := MustGenerate(q)
	if len(f.Keywords()) != filter.MaxKeywords {
		t.Errorf("expected %d keywords, got %d", filter.MaxKeywords, len(f.Keywords()))
	}
}

func TestMustGenerate_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on invalid UTF-8")
		}
	}()
	MustGenerate("\xff")
}
