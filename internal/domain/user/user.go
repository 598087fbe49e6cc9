package user

import (
	"bytes"
	"encoding/json"

	"github.com/kailas-cloud/smartprop/internal/domain"
)

// Record is a stored user profile. Fields are opaque to the service.
type Record map[string]any

// Decode parses a stored JSON document into a Record, injecting "id" when absent.
func Decode(id string, raw []byte) (Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, domain.NewInvalidInput("user %q is not a JSON object", id)
	}
	var r Record
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, domain.NewInvalidInput("user %q: %v", id, err)
	}
	if _, ok := r["id"]; !ok && id != "" {
		r["id"] = id
	}
	return r, nil
}

// Encode serializes a user for storage.
func Encode(r Record) ([]byte, error) {
	return json.Marshal(map[string]any(r))
}
