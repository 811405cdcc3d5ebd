package history

import (
	"errors"
	"fmt"
)

// ErrStorageCorrupt marks a history file that exists but cannot be decoded.
// Callers must not overwrite such a file.
var ErrStorageCorrupt = errors.New("history storage corrupt")

// CorruptError describes why a history file was rejected.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("history file %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool {
	return target == ErrStorageCorrupt
}
