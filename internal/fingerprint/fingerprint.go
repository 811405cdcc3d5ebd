// Package fingerprint computes content digests for tracked files.
//
// Digests are 128-bit and rendered as 32 lowercase hex characters. MD5 is
// the default so stores seeded by other tools keep matching; xxh3-128 is
// faster. Neither resists deliberate collisions.
package fingerprint

import (
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/keshon/hashwatch/internal/fs"

	"github.com/zeebo/xxh3"
)

// DefaultChunkSize is the read buffer used when streaming a file.
const DefaultChunkSize = 4096

// Algorithm names a supported digest.
type Algorithm string

const (
	MD5  Algorithm = "md5"
	XXH3 Algorithm = "xxh3"

	DefaultAlgorithm = MD5
)

// Algorithms lists every accepted Algorithm.
var Algorithms = []Algorithm{MD5, XXH3}

// ErrNotFound reports a file that is missing or unreadable at read time.
var ErrNotFound = errors.New("file not found")

// ErrUnknownAlgorithm is returned by ParseAlgorithm.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownAlgorithm, s)
}

type accumulator interface {
	io.Writer
	sum() []byte
}

type md5Acc struct{ hash.Hash }

func (a md5Acc) sum() []byte { return a.Sum(nil) }

type xxh3Acc struct{ *xxh3.Hasher }

func (a xxh3Acc) sum() []byte {
	b := a.Sum128().Bytes()
	return b[:]
}

func (a Algorithm) accumulator() accumulator {
	if a == XXH3 {
		return xxh3Acc{xxh3.New()}
	}
	return md5Acc{md5.New()}
}

// Sum returns the digest of an in-memory buffer, identical to what Digest
// yields for a file with the same content.
func (a Algorithm) Sum(data []byte) string {
	acc := a.accumulator()
	acc.Write(data)
	return fmt.Sprintf("%x", acc.sum())
}

// Engine streams files through the configured accumulator.
type Engine struct {
	fs        fs.FS
	chunkSize int
	algorithm Algorithm
}

type Option func(*Engine)

// WithChunkSize sets the read buffer size. Values below 1 are ignored.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithAlgorithm selects the digest. An empty value keeps the default.
func WithAlgorithm(a Algorithm) Option {
	return func(e *Engine) {
		if a != "" {
			e.algorithm = a
		}
	}
}

func NewEngine(fsys fs.FS, opts ...Option) *Engine {
	e := &Engine{fs: fsys, chunkSize: DefaultChunkSize, algorithm: DefaultAlgorithm}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Algorithm() Algorithm { return e.algorithm }

// Digest returns the hex digest of the file at path. Any open or read
// failure is reported as ErrNotFound, wrapping the underlying error.
func (e *Engine) Digest(path string) (string, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("digest %q: %w: %w", path, ErrNotFound, err)
	}
	defer f.Close()

	acc := e.algorithm.accumulator()
	buf := make([]byte, e.chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			acc.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("digest %q: %w: %w", path, ErrNotFound, err)
		}
	}

	return fmt.Sprintf("%x", acc.sum()), nil
}

// Sum digests data with DefaultAlgorithm.
func Sum(data []byte) string {
	return DefaultAlgorithm.Sum(data)
}
