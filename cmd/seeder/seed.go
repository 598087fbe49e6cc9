package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	domprop "github.com/kailas-cloud/smartprop/internal/domain/property"
	domuser "github.com/kailas-cloud/smartprop/internal/domain/user"
)

// seedFile is the on-disk layout: documents keyed by id per collection.
type seedFile struct {
	Users      map[string]json.RawMessage `json:"users"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// seed holds validated documents ready to store.
type seed struct {
	Users      map[string]domuser.Record
	Properties map[string]domprop.Record
}

func parseSeed(r io.Reader) (seed, error) {
	var raw seedFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return seed{}, fmt.Errorf("parse seed file: %w", err)
	}

	s := seed{
		Users:      make(map[string]domuser.Record, len(raw.Users)),
		Properties: make(map[string]domprop.Record, len(raw.Properties)),
	}
	for _, id := range sortedKeys(raw.Users) {
		u, err := domuser.Decode(id, raw.Users[id])
		if err != nil {
			return seed{}, fmt.Errorf("users: %w", err)
		}
		s.Users[id] = u
	}
	for _, id := range sortedKeys(raw.Properties) {
		p, err := domprop.Decode(id, raw.Properties[id])
		if err != nil {
			return seed{}, fmt.Errorf("properties: %w", err)
		}
		s.Properties[id] = p
	}
	return s, nil
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
