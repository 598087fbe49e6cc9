package terms

import "github.com/kailas-cloud/smartprop/internal/domain/property"

// MaxLocationWords caps the number of words joined into one location phrase.
const MaxLocationWords = 3

type bound int

const (
	boundMin bound = iota
	boundMax
)

// qualifier is a phrase that turns the following number into a one-sided bound.
type qualifier struct {
	words []string
	bound bound
}

// qualifiers are matched longest first.
var qualifiers = []qualifier{
	{[]string{"no", "more", "than"}, boundMax},
	{[]string{"less", "than"}, boundMax},
	{[]string{"cheaper", "than"}, boundMax},
	{[]string{"up", "to"}, boundMax},
	{[]string{"at", "most"}, boundMax},
	{[]string{"more", "than"}, boundMin},
	{[]string{"at", "least"}, boundMin},
	{[]string{"starting", "at"}, boundMin},
	{[]string{"under"}, boundMax},
	{[]string{"below"}, boundMax},
	{[]string{"max"}, boundMax},
	{[]string{"maximum"}, boundMax},
	{[]string{"within"}, boundMax},
	{[]string{"over"}, boundMin},
	{[]string{"above"}, boundMin},
	{[]string{"min"}, boundMin},
	{[]string{"minimum"}, boundMin},
	{[]string{"from"}, boundMin},
}

// rangeOpeners start a two-sided range: "<opener> N <joiner> M".
var rangeOpeners = map[string]struct{}{"between": {}, "from": {}}

var rangeJoiners = map[string]struct{}{"and": {}, "to": {}}

// units maps count nouns to the numeric field they qualify.
var units = map[string]string{
	"bed":       property.FieldBedrooms,
	"beds":      property.FieldBedrooms,
	"bedroom":   property.FieldBedrooms,
	"bedrooms":  property.FieldBedrooms,
	"br":        property.FieldBedrooms,
	"bd":        property.FieldBedrooms,
	"bdr":       property.FieldBedrooms,
	"bdrm":      property.FieldBedrooms,
	"bath":      property.FieldBathrooms,
	"baths":     property.FieldBathrooms,
	"bathroom":  property.FieldBathrooms,
	"bathrooms": property.FieldBathrooms,
	"ba":        property.FieldBathrooms,
}

// propertyTypes maps type words to their canonical type token.
var propertyTypes = map[string]string{
	"apartment":   "apartment",
	"apartments":  "apartment",
	"apt":         "apartment",
	"flat":        "apartment",
	"flats":       "apartment",
	"house":       "house",
	"houses":      "house",
	"home":        "house",
	"homes":       "house",
	"condo":       "condo",
	"condos":      "condo",
	"condominium": "condo",
	"studio":      "studio",
	"studios":     "studio",
	"townhouse":   "townhouse",
	"townhouses":  "townhouse",
	"townhome":    "townhouse",
	"villa":       "villa",
	"villas":      "villa",
	"duplex":      "duplex",
	"loft":        "loft",
	"lofts":       "loft",
	"bungalow":    "bungalow",
	"cottage":     "cottage",
	"penthouse":   "penthouse",
	"cabin":       "cabin",
}

// locationPrepositions introduce a place name.
var locationPrepositions = map[string]struct{}{
	"in": {}, "near": {}, "around": {}, "at": {},
}

// connectors end a location phrase. They are otherwise ordinary keywords.
var connectors = map[string]struct{}{
	"and": {}, "with": {}, "for": {}, "or": {}, "by": {}, "but": {}, "to": {},
}

// reserved holds every word the grammar gives a meaning to; none of them can
// be part of a place name.
var reserved = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, q := range qualifiers {
		for _, w := range q.words {
			m[w] = struct{}{}
		}
	}
	for _, set := range []map[string]struct{}{rangeOpeners, rangeJoiners, locationPrepositions, connectors} {
		for w := range set {
			m[w] = struct{}{}
		}
	}
	for w := range units {
		m[w] = struct{}{}
	}
	for w := range propertyTypes {
		m[w] = struct{}{}
	}
	return m
}()

func isReserved(w string) bool {
	_, ok := reserved[w]
	return ok
}
