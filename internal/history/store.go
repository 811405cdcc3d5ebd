package history

import (
	"bytes"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Store maps tracked paths to their histories. Iteration follows insertion
// order, which for a loaded store is the order of the document on disk.
// Paths are compared as raw strings.
type Store struct {
	entries *orderedmap.OrderedMap[string, History]
}

func NewStore() *Store {
	return &Store{entries: orderedmap.New[string, History]()}
}

func (s *Store) Len() int {
	return s.entries.Len()
}

// Paths returns the tracked paths in store order.
func (s *Store) Paths() []string {
	paths := make([]string, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// History returns a copy of the history recorded for path.
func (s *Store) History(path string) (History, bool) {
	h, ok := s.entries.Get(path)
	if !ok {
		return nil, false
	}
	return slices.Clone(h), true
}

// Append adds obs to the end of path's history. An unknown path starts a
// new one-element history at the end of the store.
func (s *Store) Append(path string, obs Observation) {
	h, _ := s.entries.Get(path)
	s.entries.Set(path, append(slices.Clip(h), obs))
}

func (s *Store) MarshalJSON() ([]byte, error) {
	return s.entries.MarshalJSON()
}

func (s *Store) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected a JSON object")
	}

	entries := orderedmap.New[string, History]()
	if err := entries.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	s.entries = entries
	return s.validate()
}

func (s *Store) validate() error {
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		if len(pair.Value) == 0 {
			return fmt.Errorf("path %q has no observations", pair.Key)
		}
		for i, obs := range pair.Value {
			if obs.Digest == "" {
				return fmt.Errorf("path %q: observation %d has no hash", pair.Key, i)
			}
		}
	}
	return nil
}
