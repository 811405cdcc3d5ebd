package history

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/keshon/hashwatch/internal/fs"
)

// Storage persists a Store as an indented JSON document at a fixed path.
type Storage struct {
	fs   fs.FS
	path string
}

func NewStorage(fsys fs.FS, path string) *Storage {
	return &Storage{fs: fsys, path: path}
}

func (s *Storage) Path() string { return s.path }

// Load reads the store. A missing or blank file yields an empty store.
// Undecodable content yields a *CorruptError matching ErrStorageCorrupt.
func (s *Storage) Load() (*Store, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if s.fs.IsNotExist(err) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("read history %q: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return NewStore(), nil
	}

	st := NewStore()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	return st, nil
}

// Save replaces the file with the full store in one atomic rename.
func (s *Storage) Save(st *Store) error {
	if st == nil {
		return fmt.Errorf("save history %q: nil store", s.path)
	}

	data, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := fs.WriteFileAtomic(s.fs, s.path, data); err != nil {
		return fmt.Errorf("save history %q: %w", s.path, err)
	}
	return nil
}
