package user

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/smartprop/internal/domain"
)

func TestDecode(t *testing.T) {
	u, err := Decode("u1", []byte(` {"name": "Dana"} `))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u["id"] != "u1" || u["name"] != "Dana" {
		t.Errorf("unexpected record: %v", u)
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("u1", []byte(`42`))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
