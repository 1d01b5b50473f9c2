// Package storage keeps uploaded recordings on disk between the upload and
// analyze calls. Files are content-addressed by blake3 hash, so re-uploading
// the same recording lands on the same path.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// hashLen is the blake3 digest size in bytes.
const hashLen = 32

// ErrStore marks failures while persisting an upload.
var ErrStore = errors.New("store upload failed")

// Store writes uploads into a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStore, dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the storage root.
func (s *Store) Dir() string { return s.dir }

// Save streams r to a temp file, then renames it to its content hash with
// the given extension. The returned path is stable for identical content.
func (s *Store) Save(r io.Reader, ext string) (string, error) {
	tmp, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}
	defer os.Remove(tmp.Name())

	h := blake3.New(hashLen, nil)
	if _, err := io.Copy(io.MultiWriter(tmp, h), r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}

	target := filepath.Join(s.dir, fmt.Sprintf("%x%s", h.Sum(nil), ext))
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStore, err)
	}
	return target, nil
}

// Contains reports whether path lies inside the storage root. The analyze
// endpoint uses it to reject paths pointing elsewhere.
func (s *Store) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !filepath.IsAbs(rel) && !hasDotDotPrefix(rel)
}

func hasDotDotPrefix(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
