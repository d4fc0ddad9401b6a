package digest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/xxh3"

	"medley/internal/scan"
)

// Supported digest algorithms.
const (
	AlgorithmMD5  = "md5"
	AlgorithmXXH3 = "xxh3"
)

// Engine streams track contents through a hash in fixed-size chunks and
// produces a hex digest. The digest is deterministic over file contents and
// list order: any byte change or reordering yields a different value.
type Engine struct {
	algorithm string
	chunkSize int
}

// NewEngine constructs an engine for the given algorithm and chunk size.
func NewEngine(algorithm string, chunkSize int) (*Engine, error) {
	switch algorithm {
	case AlgorithmMD5, AlgorithmXXH3:
	default:
		return nil, fmt.Errorf("digest: unsupported algorithm %q", algorithm)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("digest: chunk size must be positive, got %d", chunkSize)
	}
	return &Engine{algorithm: algorithm, chunkSize: chunkSize}, nil
}

// Algorithm returns the configured algorithm name.
func (e *Engine) Algorithm() string {
	return e.algorithm
}

// Compute hashes every track's bytes in list order and returns the hex digest.
func (e *Engine) Compute(tracks []scan.Track) (string, error) {
	sum := e.newSummer()
	buf := make([]byte, e.chunkSize)
	for _, track := range tracks {
		if err := hashFile(sum, track.Path, buf); err != nil {
			return "", err
		}
	}
	return sum.digest(), nil
}

func hashFile(sum summer, path string, buf []byte) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("digest: open %s: %w", path, err)
	}
	defer file.Close()

	// The bare Reader wrapper hides *os.File's WriteTo so CopyBuffer
	// actually reads through buf in fixed-size chunks.
	if _, err := io.CopyBuffer(sum, struct{ io.Reader }{file}, buf); err != nil {
		return fmt.Errorf("digest: read %s: %w", path, err)
	}
	return nil
}

type summer interface {
	io.Writer
	digest() string
}

func (e *Engine) newSummer() summer {
	switch e.algorithm {
	case AlgorithmXXH3:
		return &xxh3Summer{hasher: xxh3.New()}
	default:
		return &md5Summer{hash: md5.New()}
	}
}

type md5Summer struct {
	hash hash.Hash
}

func (s *md5Summer) Write(p []byte) (int, error) {
	return s.hash.Write(p)
}

func (s *md5Summer) digest() string {
	return hex.EncodeToString(s.hash.Sum(nil))
}

type xxh3Summer struct {
	hasher *xxh3.Hasher
}

func (s *xxh3Summer) Write(p []byte) (int, error) {
	return s.hasher.Write(p)
}

func (s *xxh3Summer) digest() string {
	sum := s.hasher.Sum128().Bytes()
	return hex.EncodeToString(sum[:])
}
