package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_Upload(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:3000/files")

	content := "evidence bytes"
	err := store.Upload(context.Background(), "cases/7/evidence.zip", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(store.Root(), "cases", "7", "evidence.zip"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDiskStore_Upload_OverwritesLastWriteWins(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:3000/files")

	require.NoError(t, store.Upload(context.Background(), "cases/7/report.txt", strings.NewReader("first"), 5))
	require.NoError(t, store.Upload(context.Background(), "cases/7/report.txt", strings.NewReader("second"), 6))

	data, err := os.ReadFile(filepath.Join(store.Root(), "cases", "7", "report.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestDiskStore_Upload_RejectsTraversal(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:3000/files")

	err := store.Upload(context.Background(), "../escape.txt", strings.NewReader("x"), 1)
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(store.Root()), "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDiskStore_Upload_ShortWrite(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:3000/files")

	err := store.Upload(context.Background(), "cases/7/f.bin", strings.NewReader("abc"), 10)
	assert.Error(t, err)
}

func TestDiskStore_Upload_CancelledContext(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:3000/files")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.Upload(ctx, "cases/7/f.bin", strings.NewReader("abc"), 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiskStore_PublicURL(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "http://localhost:3000/files/")
	assert.Equal(t, "http://localhost:3000/files/cases/7/evidence.zip", store.PublicURL("cases/7/evidence.zip"))
	assert.Equal(t, "http://localhost:3000/files/cases/7/evidence.zip", store.PublicURL("/cases/7/evidence.zip"))
}
