package fingerprint_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/keshon/hashwatch/internal/fingerprint"
	"github.com/keshon/hashwatch/internal/fs"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestDigestFormat(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("/a.txt", []byte("hello world"), 0o644)

	d, err := fingerprint.NewEngine(m).Digest("/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !hexDigest.MatchString(d) {
		t.Fatalf("digest %q is not 32 lowercase hex chars", d)
	}
	if d != fingerprint.Sum([]byte("hello world")) {
		t.Fatalf("streamed digest %q differs from Sum", d)
	}
}

func TestDigestEmptyFile(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("/empty", nil, 0o644)

	d, err := fingerprint.NewEngine(m).Digest("/empty")
	if err != nil {
		t.Fatal(err)
	}
	if d != fingerprint.Sum(nil) {
		t.Fatalf("unexpected digest for empty file: %s", d)
	}
}

func TestDigestChunkBoundaries(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 1000) // 16000 bytes
	data = append(data, 'x')
	want := fingerprint.Sum(data)

	m := fs.NewMemoryFS()
	m.WriteFile("/big", data, 0o644)

	for _, size := range []int{1, 7, 4096, 16001, 1 << 20} {
		d, err := fingerprint.NewEngine(m, fingerprint.WithChunkSize(size)).Digest("/big")
		if err != nil {
			t.Fatalf("chunk %d: %v", size, err)
		}
		if d != want {
			t.Errorf("chunk %d: got %s want %s", size, d, want)
		}
	}
}

func TestDigestDiffersOnContent(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("/a", []byte("one"), 0o644)
	m.WriteFile("/b", []byte("two"), 0o644)

	e := fingerprint.NewEngine(m)
	a, _ := e.Digest("/a")
	b, _ := e.Digest("/b")
	if a == b {
		t.Fatal("different content produced the same digest")
	}
}

func TestDigestNotFound(t *testing.T) {
	_, err := fingerprint.NewEngine(fs.NewMemoryFS()).Digest("/missing")
	if !errors.Is(err, fingerprint.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected the underlying not-exist error to be kept, got %v", err)
	}
}

func TestDigestOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.bin")
	if err := os.WriteFile(path, []byte("disk content"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := fingerprint.NewEngine(fs.NewOSFS()).Digest(path)
	if err != nil {
		t.Fatal(err)
	}
	if d != fingerprint.Sum([]byte("disk content")) {
		t.Fatalf("unexpected digest %s", d)
	}

	if _, err := fingerprint.NewEngine(fs.NewOSFS()).Digest(filepath.Dir(path) + "/gone"); !errors.Is(err, fingerprint.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultDigestIsMD5(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("/empty", nil, 0o644)
	m.WriteFile("/hello", []byte("hello world"), 0o644)

	e := fingerprint.NewEngine(m)
	if e.Algorithm() != fingerprint.MD5 {
		t.Fatalf("default algorithm = %s, want md5", e.Algorithm())
	}

	for path, want := range map[string]string{
		"/empty": "d41d8cd98f00b204e9800998ecf8427e",
		"/hello": "5eb63bbbe01eeed093cb22bb8f5acdc3",
	} {
		d, err := e.Digest(path)
		if err != nil {
			t.Fatal(err)
		}
		if d != want {
			t.Errorf("%s: got %s want %s", path, d, want)
		}
	}
}

func TestDigestXXH3(t *testing.T) {
	data := bytes.Repeat([]byte("xyz"), 5000)
	m := fs.NewMemoryFS()
	m.WriteFile("/f", data, 0o644)

	for _, size := range []int{1, 4096} {
		e := fingerprint.NewEngine(m, fingerprint.WithAlgorithm(fingerprint.XXH3), fingerprint.WithChunkSize(size))
		d, err := e.Digest("/f")
		if err != nil {
			t.Fatal(err)
		}
		if !hexDigest.MatchString(d) {
			t.Fatalf("digest %q is not 32 lowercase hex chars", d)
		}
		if d != fingerprint.XXH3.Sum(data) {
			t.Fatalf("chunk %d: streamed %s differs from Sum", size, d)
		}
		if d == fingerprint.MD5.Sum(data) {
			t.Fatal("xxh3 and md5 produced the same digest")
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, s := range []string{"md5", "xxh3"} {
		a, err := fingerprint.ParseAlgorithm(s)
		if err != nil || string(a) != s {
			t.Fatalf("ParseAlgorithm(%q) = %q, %v", s, a, err)
		}
	}
	if _, err := fingerprint.ParseAlgorithm("sha1"); !errors.Is(err, fingerprint.ErrUnknownAlgorithm) {
		t.Fatalf("expected ErrUnknownAlgorithm, got %v", err)
	}
}
