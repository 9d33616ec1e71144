package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes blobs under a root directory and derives public URLs
// from a fixed base. It is the only BlobStore implementation; the served
// files are exposed read-only by the web router under the same base path.
type DiskStore struct {
	root       string
	publicBase string
}

func NewDiskStore(root string, publicBase string) *DiskStore {
	return &DiskStore{
		root:       root,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

// Upload saves the blob at path below the root, creating directories as
// needed. An existing blob at the same path is overwritten.
func (s *DiskStore) Upload(ctx context.Context, path string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(path))
	if !strings.HasPrefix(filepath.Clean(fullPath), filepath.Clean(s.root)+string(os.PathSeparator)) {
		return errors.New("invalid blob path")
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	if size > 0 && written != size {
		return fmt.Errorf("short write: got %d bytes, want %d", written, size)
	}
	return nil
}

// PublicURL derives the dereferenceable locator for an uploaded path.
func (s *DiskStore) PublicURL(path string) string {
	return s.publicBase + "/" + strings.TrimPrefix(path, "/")
}

// Root exposes the directory the web router serves blobs from.
func (s *DiskStore) Root() string {
	return s.root
}
