// Package property models a listing as an opaque field map with optional lookups.
package property

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/smartprop/internal/domain"
)

// Well-known listing fields. Any of them may be absent from a record.
const (
	FieldID          = "id"
	FieldPrice       = "price"
	FieldBedrooms    = "bedrooms"
	FieldBathrooms   = "bathrooms"
	FieldLocation    = "location"
	FieldCity        = "city"
	FieldAddress     = "address"
	FieldType        = "type"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldAmenities   = "amenities"
)

// aliases lists the record fields consulted for a predicate field, in lookup order.
var aliases = map[string][]string{
	FieldLocation: {FieldLocation, FieldCity, FieldAddress},
	FieldType:     {FieldType, "propertyType", "property_type"},
}

// KeywordFields are the free-text fields searched for free keywords.
var KeywordFields = []string{
	FieldDescription, FieldTitle, FieldLocation, FieldCity, FieldAddress, FieldType, FieldAmenities,
}

// Aliases returns the record fields that hold values for the given predicate field.
func Aliases(field string) []string {
	if a, ok := aliases[field]; ok {
		return a
	}
	return []string{field}
}

// Record is one listing. Field presence varies per record; the map is never mutated.
type Record map[string]any

// Number returns a numeric field. Values of any other shape count as absent.
func (r Record) Number(field string) (float64, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, false
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, ok := ParseNumber(n)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text returns a non-empty string field.
func (r Record) Text(field string) (string, bool) {
	s, ok := r[field].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Texts returns every string held by a field, whether a single string or a list.
func (r Record) Texts(field string) []string {
	switch v := r[field].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ParseNumber parses a numeric string, tolerating a leading "$" and thousands separators.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Decode parses a stored JSON document. The document must be a JSON object;
// the id is injected under "id" unless the document carries its own.
func Decode(id string, raw []byte) (Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, domain.NewInvalidInput("property %q is not a JSON object", id)
	}
	var r Record
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, domain.NewInvalidInput("property %q: %v", id, err)
	}
	if _, ok := r[FieldID]; !ok && id != "" {
		r[FieldID] = id
	}
	return r, nil
}

// Encode serializes a record for storage.
func Encode(r Record) ([]byte, error) {
	return json.Marshal(map[string]any(r))
}
