package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Key prefixes used by the upload flow.
const (
	PrefixUploads = "uploads"
	PrefixSlides  = "slides"
)

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// Base returns the root directory of the store.
func (s *FSStore) Base() string { return s.base }

// Path maps a key to its on-disk location.
func (s *FSStore) Path(key string) string {
	return filepath.Join(s.base, filepath.Clean("/"+key))
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	return os.Open(s.Path(key))
}

func (s *FSStore) Reset(prefix string) error {
	prefix = strings.Trim(filepath.Clean("/"+prefix), "/")
	if prefix == "" || prefix == "." {
		return errors.New("refusing to reset store root")
	}
	dir := filepath.Join(s.base, prefix)
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
