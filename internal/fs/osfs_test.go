package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/keshon/hashwatch/internal/fs"
)

func TestOSFS_OpenHook(t *testing.T) {
	called := false
	orig := fs.GetOpen()
	defer fs.SetOpen(orig)

	fs.SetOpen(func(path string) (*os.File, error) {
		called = true
		if path != "abc.txt" {
			t.Fatalf("expected path abc.txt, got %s", path)
		}
		return nil, errors.New("open-error")
	})

	r, err := fs.NewOSFS().Open("abc.txt")
	if !called {
		t.Fatal("hook not called")
	}
	if r != nil {
		t.Fatal("expected nil reader on error")
	}
	if err == nil || err.Error() != "open-error" {
		t.Fatalf("expected open-error, got %v", err)
	}
}

func TestOSFS_ReadFileMapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	if err := os.WriteFile(path, []byte(`{"a": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := fs.NewOSFS().ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a": []}` {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestOSFS_ReadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := fs.NewOSFS().ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no bytes, got %d", len(got))
	}
}

func TestOSFS_ReadFileMissing(t *testing.T) {
	osfs := fs.NewOSFS()
	_, err := osfs.ReadFile(filepath.Join(t.TempDir(), "nope"))
	if !osfs.IsNotExist(err) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}

func TestOSFS_CreateTempFileAndRename(t *testing.T) {
	dir := t.TempDir()
	osfs := fs.NewOSFS()

	w, name, err := osfs.CreateTempFile(dir, "x-*")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(name) != dir {
		t.Fatalf("temp file %q not in %q", name, dir)
	}
	if _, err := io.WriteString(w, "payload"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "final")
	if err := osfs.Rename(name, dst); err != nil {
		t.Fatal(err)
	}
	if _, err := osfs.Stat(dst); err != nil {
		t.Fatalf("rename did not create %s: %v", dst, err)
	}
	if _, err := osfs.Stat(name); !osfs.IsNotExist(err) {
		t.Fatal("rename left the temp file behind")
	}
}

func TestOSFS_IsNotExistHook(t *testing.T) {
	called := false
	errFake := errors.New("nope")

	orig := fs.GetIsNotExist()
	defer fs.SetIsNotExist(orig)
	fs.SetIsNotExist(func(err error) bool {
		called = true
		return err == errFake
	})

	if !fs.NewOSFS().IsNotExist(errFake) {
		t.Fatal("expected true")
	}
	if !called {
		t.Fatal("isNotExist not called")
	}
}
