package terms

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// tokenRe finds numeric tokens (with optional "$", thousands separators,
// decimals, "+" and a letter suffix such as "k" or "bed") and plain words.
// Everything else is a separator.
var tokenRe = regexp.MustCompile(`\$?\d+(?:,\d{3})*(?:\.\d+)?\+?\p{L}*|[\p{L}\p{N}]+`)

var numberRe = regexp.MustCompile(`^\$?(\d+(?:,\d{3})*(?:\.\d+)?)(\+?)(\p{L}*)$`)

type token struct {
	text string // lower-cased
	raw  string // as written

	isNum bool
	num   float64
	plus  bool   // "3+"
	unit  string // field from a compact unit suffix ("3bed")
}

// normalize applies NFKC, drops control characters and trims.
func normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func tokenize(s string) []token {
	lower := cases.Lower(language.Und)
	matches := tokenRe.FindAllString(s, -1)
	toks := make([]token, 0, len(matches))
	for _, m := range matches {
		t := token{raw: m, text: lower.String(m)}
		parseNumber(&t)
		toks = append(toks, t)
	}
	return toks
}

// parseNumber classifies a token as a number: "500000", "$500,000", "1.5m",
// "3+", "3bed". Suffixes other than k, m, or a count unit leave it a word.
func parseNumber(t *token) {
	m := numberRe.FindStringSubmatch(t.text)
	if m == nil {
		return
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return
	}
	switch suffix := m[3]; suffix {
	case "":
	case "k":
		v *= 1e3
	case "m":
		v *= 1e6
	default:
		field, ok := units[suffix]
		if !ok {
			return
		}
		t.unit = field
	}
	t.isNum = true
	t.num = v
	t.plus = m[2] == "+"
}

// isWord reports whether a token is purely alphabetic.
func (t token) isWord() bool {
	for _, r := range t.text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return t.text != ""
}

// isCapitalized reports whether the raw token looks like a proper noun:
// an upper-case first letter followed by lower-case letters, or a short
// all-caps abbreviation such as "NYC".
func (t token) isCapitalized() bool {
	first, size := utf8.DecodeRuneInString(t.raw)
	if !unicode.IsUpper(first) {
		return false
	}
	rest := t.raw[size:]
	if rest == "" {
		return false
	}
	if strings.ToUpper(rest) == rest {
		return utf8.RuneCountInString(t.raw) <= 3
	}
	return true
}

// Canonical renders free text the way the extractor reads it: normalized,
// lower-cased tokens joined by single spaces, with property-type synonyms
// folded to their canonical word. "Austin, TX" becomes "austin tx" and
// "Flat" becomes "apartment".
func Canonical(s string) string {
	toks := tokenize(normalize(s))
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.text
		if c, ok := propertyTypes[t.text]; ok {
			words[i] = c
		}
	}
	return strings.Join(words, " ")
}
