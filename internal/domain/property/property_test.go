package property

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/smartprop/internal/domain"
)

func TestRecord_Number(t *testing.T) {
	r := Record{
		"float":   450000.0,
		"int":     3,
		"number":  json.Number("2.5"),
		"string":  "$1,250,000",
		"garbage": "n/a",
		"bool":    true,
		"nil":     nil,
	}

	tests := []struct {
		field  string
		want   float64
		wantOK bool
	}{
		{"float", 450000, true},
		{"int", 3, true},
		{"number", 2.5, true},
		{"string", 1250000, true},
		{"garbage", 0, false},
		{"bool", 0, false},
		{"nil", 0, false},
		{"missing", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			got, ok := r.Number(tc.field)
			if ok != tc.wantOK || got != tc.want {
				t.Errorf("Number(%q) = (%v, %v), want (%v, %v)", tc.field, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestRecord_Text(t *testing.T) {
	r := Record{"location": "Austin", "empty": "", "price": 1.0}

	if s, ok := r.Text("location"); !ok || s != "Austin" {
		t.Errorf("Text(location) = (%q, %v)", s, ok)
	}
	if _, ok := r.Text("empty"); ok {
		t.Error("empty string should count as absent")
	}
	if _, ok := r.Text("price"); ok {
		t.Error("numeric field should not be text")
	}
}

func TestRecord_Texts(t *testing.T) {
	r := Record{
		"amenities": []any{"Pool", 3.0, "Gym", ""},
		"title":     "Loft",
		"tags":      []string{"a", "b"},
	}

	if got := r.Texts("amenities"); len(got) != 2 || got[0] != "Pool" || got[1] != "Gym" {
		t.Errorf("Texts(amenities) = %v", got)
	}
	if got := r.Texts("title"); len(got) != 1 || got[0] != "Loft" {
		t.Errorf("Texts(title) = %v", got)
	}
	if got := r.Texts("tags"); len(got) != 2 {
		t.Errorf("Texts(tags) = %v", got)
	}
	if got := r.Texts("missing"); got != nil {
		t.Errorf("Texts(missing) = %v, want nil", got)
	}
}

func TestAliases(t *testing.T) {
	if got := Aliases(FieldLocation); len(got) != 3 || got[0] != FieldLocation || got[1] != FieldCity {
		t.Errorf("Aliases(location) = %v", got)
	}
	if got := Aliases(FieldPrice); len(got) != 1 || got[0] != FieldPrice {
		t.Errorf("Aliases(price) = %v", got)
	}
}

func TestDecode(t *testing.T) {
	r, err := Decode("p1", []byte(`{"price": 100, "type": "house"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r[FieldID] != "p1" {
		t.Errorf("expected injected id p1, got %v", r[FieldID])
	}
	if p, _ := r.Number(FieldPrice); p != 100 {
		t.Errorf("price: got %v", p)
	}
}

func TestDecode_KeepsOwnID(t *testing.T) {
	r, err := Decode("key-id", []byte(`{"id": "doc-id"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r[FieldID] != "doc-id" {
		t.Errorf("expected doc-id, got %v", r[FieldID])
	}
}

func TestDecode_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, ``, `{broken`} {
		_, err := Decode("p", []byte(raw))
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Decode(%q): expected ErrInvalidInput, got %v", raw, err)
		}
	}
}

func TestEncode_RoundTripsFields(t *testing.T) {
	data, err := Encode(Record{"price": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"price":5}` {
		t.Errorf("unexpected encoding: %s", data)
	}
}
