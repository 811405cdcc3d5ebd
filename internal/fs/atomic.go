package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is given to files that did not exist before the write.
const DefaultFileMode os.FileMode = 0o644

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, creating the parent directory if needed. Readers see either
// the old content or the new, never a mix. The target keeps its previous
// permissions; a new file gets DefaultFileMode.
func WriteFileAtomic(fsys FS, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}

	mode := DefaultFileMode
	if fi, err := fsys.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	} else if !fsys.IsNotExist(err) {
		return fmt.Errorf("stat %q: %w", path, err)
	}

	tmp, tmpPath, err := fsys.CreateTempFile(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	defer fsys.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file %q: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file %q: %w", tmpPath, err)
	}
	if err := fsys.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file %q: %w", tmpPath, err)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %q to %q: %w", tmpPath, path, err)
	}
	return nil
}
