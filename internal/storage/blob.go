package storage

import "io"

// BlobStore keeps uploaded documents around for diagnostics and re-extraction.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
