package fs_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/keshon/hashwatch/internal/fs"
)

func TestMemoryFS_WriteReadFile(t *testing.T) {
	m := fs.NewMemoryFS()

	if err := m.MkdirAll("dir/sub", 0o755); err != nil {
		t.Fatal(err)
	}

	content := []byte("hello world")
	if err := m.WriteFile("dir/sub/file.txt", content, 0o644); err != nil {
		t.Fatal(err)
	}

	read, err := m.ReadFile("dir/sub/file.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(read, content) {
		t.Fatalf("expected %q, got %q", content, read)
	}
}

func TestMemoryFS_WriteFileNonExistentDir(t *testing.T) {
	m := fs.NewMemoryFS()
	err := m.WriteFile("nope/file.txt", []byte("x"), 0o644)
	if err == nil {
		t.Fatal("expected error writing to non-existent dir")
	}
}

func TestMemoryFS_OpenIsSnapshot(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("/a.txt", []byte("abc"), 0o644)

	f, err := m.Open("/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	m.WriteFile("/a.txt", []byte("xyz"), 0o644)

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestMemoryFS_MissingIsNotExist(t *testing.T) {
	m := fs.NewMemoryFS()

	if _, err := m.Open("/missing"); !m.IsNotExist(err) {
		t.Fatalf("Open: expected not-exist, got %v", err)
	}
	if _, err := m.ReadFile("/missing"); !m.IsNotExist(err) {
		t.Fatalf("ReadFile: expected not-exist, got %v", err)
	}
	if _, err := m.Stat("/missing"); !m.IsNotExist(err) {
		t.Fatalf("Stat: expected not-exist, got %v", err)
	}
	if err := m.Remove("/missing"); !m.IsNotExist(err) {
		t.Fatalf("Remove: expected not-exist, got %v", err)
	}
}

func TestMemoryFS_TempFileVisibleOnClose(t *testing.T) {
	m := fs.NewMemoryFS()

	w, name, err := m.CreateTempFile(".", "db-*.json")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("{}"))
	if m.Exists(name) {
		t.Fatal("temp file visible before close")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !m.Exists(name) {
		t.Fatal("temp file missing after close")
	}

	_, other, _ := m.CreateTempFile(".", "db-*.json")
	if other == name {
		t.Fatalf("expected unique temp names, got %q twice", name)
	}
}

func TestMemoryFS_RenameAndRemove(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("a", []byte("1"), 0o644)

	if err := m.Rename("a", "b"); err != nil {
		t.Fatal(err)
	}
	if m.Exists("a") || !m.Exists("b") {
		t.Fatal("rename did not move the file")
	}
	if err := m.Remove("b"); err != nil {
		t.Fatal(err)
	}
	if m.Exists("b") {
		t.Fatal("remove left the file behind")
	}
}

func TestMemoryFS_Stat(t *testing.T) {
	m := fs.NewMemoryFS()
	m.MkdirAll("/data", 0o755)
	m.WriteFile("/data/f", []byte("12345"), 0o644)

	fi, err := m.Stat("/data/f")
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != 5 || fi.IsDir() || fi.Name() != "f" {
		t.Fatalf("unexpected file info: %+v", fi)
	}

	di, err := m.Stat("/data")
	if err != nil || !di.IsDir() {
		t.Fatalf("expected /data to be a dir, got %v %v", di, err)
	}
}
