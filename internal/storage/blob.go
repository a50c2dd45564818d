package storage

import "io"

// BlobStore holds exam assets (images, audio, css) extracted from uploaded
// packages. The ingestion core never touches it; handlers upload the asset
// bytes the parser returns and record the resulting URLs on the exam.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	URL(key string) (string, error)
}
