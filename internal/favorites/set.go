// Package favorites keeps the set of favorite names and persists it in a
// key-value slot.
package favorites

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Set is an insertion-ordered set of names. The zero value is empty. Toggle
// returns a new Set and leaves the receiver untouched.
type Set struct {
	names []string
}

// NewSet builds a Set from names, dropping repeats.
func NewSet(names ...string) Set {
	var s Set
	for _, name := range names {
		if !s.Contains(name) {
			s.names = append(s.names, name)
		}
	}
	return s
}

// Contains reports whether name is in the set. Names match byte for byte.
func (s Set) Contains(name string) bool {
	return slices.Contains(s.names, name)
}

// Toggle adds name if absent and removes it if present.
func (s Set) Toggle(name string) Set {
	idx := slices.Index(s.names, name)
	if idx >= 0 {
		return Set{names: slices.Delete(slices.Clone(s.names), idx, idx+1)}
	}
	next := make([]string, 0, len(s.names)+1)
	next = append(next, s.names...)
	return Set{names: append(next, name)}
}

// Names returns the names in insertion order.
func (s Set) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of names.
func (s Set) Len() int {
	return len(s.names)
}

// Encode serializes the set as a JSON array of strings.
func Encode(s Set) (string, error) {
	names := s.names
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("failed to encode favorites: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array of strings. A JSON null decodes to an empty set.
func Decode(raw string) (Set, error) {
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return Set{}, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return NewSet(names...), nil
}
