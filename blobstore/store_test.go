package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/idxgo/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blobReadAll reads an entire blob via ReadAt.
func blobReadAll(t *testing.T, b Blob) []byte {
	t.Helper()

	buf := make([]byte, b.Size())
	n, err := b.ReadAt(context.Background(), buf, 0)
	if !errors.Is(err, io.EOF) {
		require.NoError(t, err)
	}

	return buf[:n]
}

func testStoreReads(t *testing.T, store BlobStore, name string, content []byte) {
	t.Helper()

	ctx := context.Background()

	b, err := store.Open(ctx, name)
	require.NoError(t, err)

	defer func() { require.NoError(t, b.Close()) }()

	assert.Equal(t, int64(len(content)), b.Size())
	assert.Equal(t, content, blobReadAll(t, b))

	// Interior read.
	mid := make([]byte, 4)
	n, err := b.ReadAt(ctx, mid, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, content[3:7], mid)

	// Tail read past the end reports EOF with the valid prefix.
	tail := make([]byte, 10)
	n, err = b.ReadAt(ctx, tail, int64(len(content))-2)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)

	// RangeReader, when supported, must agree with ReadAt.
	if rr, ok := b.(RangeReader); ok {
		rc, err := rr.ReadRange(ctx, 3, 4)
		require.NoError(t, err)

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, content[3:7], got)
	}
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	content := []byte("0123456789abcdef")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.bin"), content, 0o600))

	store := NewLocalStore(dir)
	testStoreReads(t, store, "index.bin", content)

	t.Run("not found", func(t *testing.T) {
		_, err := store.Open(context.Background(), "missing.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("mappable", func(t *testing.T) {
		b, err := store.Open(context.Background(), "index.bin")
		require.NoError(t, err)

		defer b.Close()

		m, ok := b.(Mappable)
		require.True(t, ok)

		data, err := m.Bytes()
		require.NoError(t, err)
		assert.Equal(t, content, data)
	})
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	content := []byte("0123456789abcdef")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.bin"), content, 0o600))

	store := NewFileStore(dir)
	testStoreReads(t, store, "index.bin", content)

	t.Run("not found", func(t *testing.T) {
		_, err := store.Open(context.Background(), "missing.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		names, err := store.List(context.Background(), "index")
		require.NoError(t, err)
		assert.Equal(t, []string{"index.bin"}, names)
	})

	t.Run("canceled context", func(t *testing.T) {
		b, err := store.Open(context.Background(), "index.bin")
		require.NoError(t, err)

		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = b.ReadAt(ctx, make([]byte, 1), 0)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("injected read fault", func(t *testing.T) {
		errBoom := errors.New("boom")

		ffs := fs.NewFaultyFS(fs.LocalFS{})
		ffs.SetFault("index.bin", fs.Fault{FailReadAt: true, Err: errBoom})

		faulty := NewFileStoreFS(dir, ffs)

		b, err := faulty.Open(context.Background(), "index.bin")
		require.NoError(t, err)

		defer b.Close()

		_, err = b.ReadAt(context.Background(), make([]byte, 4), 0)
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	content := []byte("0123456789abcdef")

	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "index.bin", content))

	testStoreReads(t, store, "index.bin", content)

	t.Run("not found", func(t *testing.T) {
		_, err := store.Open(ctx, "missing.bin")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "other/data.bin", []byte("x")))

		names, err := store.List(ctx, "index")
		require.NoError(t, err)
		assert.Equal(t, []string{"index.bin"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"index.bin", "other/data.bin"}, all)
	})

	t.Run("open blob survives delete", func(t *testing.T) {
		b, err := store.Open(ctx, "index.bin")
		require.NoError(t, err)

		defer b.Close()

		require.NoError(t, store.Delete(ctx, "index.bin"))

		assert.Equal(t, content, blobReadAll(t, b))

		_, err = store.Open(ctx, "index.bin")
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, store.Put(ctx, "index.bin", content))
	})
}
