package storage

import "io"

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	// Reset removes everything stored under prefix. Resetting a prefix that
	// was never written is not an error.
	Reset(prefix string) error
}
