// Package storage holds the blob store the submission workflow uploads
// case files into. The store keys blobs by a forward-slash path and hands
// out public locators derived from a fixed base URL.
package storage

import (
	"context"
	"io"
)

// BlobStore stores raw blobs by path. Upload replaces any existing blob at
// the same path (last write wins, no uniqueness suffixing).
type BlobStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64) error
	PublicURL(path string) string
}
