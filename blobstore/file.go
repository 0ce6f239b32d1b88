package blobstore

import (
	"bytes"
	"context"
	"io"
	"path/filepath"

	"github.com/hupe1980/idxgo/internal/fs"
)

// FileStore implements BlobStore using plain positional reads. It exists
// for platforms or mounts where memory mapping is undesirable, and its
// injectable file system lets tests fail reads and closes on purpose.
type FileStore struct {
	root string
	fsys fs.FileSystem
}

// NewFileStore creates a new FileStore rooted at the given directory.
func NewFileStore(root string) *FileStore {
	return NewFileStoreFS(root, fs.Default)
}

// NewFileStoreFS creates a FileStore with an explicit file system.
func NewFileStoreFS(root string, fsys fs.FileSystem) *FileStore {
	return &FileStore{root: root, fsys: fsys}
}

// Open opens a blob for reading.
func (s *FileStore) Open(_ context.Context, name string) (Blob, error) {
	f, err := s.fsys.Open(filepath.Join(s.root, name))
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return &fileBlob{f: f, size: fi.Size()}, nil
}

// List returns the names of all blobs with the given prefix, sorted.
func (s *FileStore) List(_ context.Context, prefix string) ([]string, error) {
	pattern := filepath.Join(s.root, prefix+"*")

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(s.root, m)
		if err != nil {
			continue
		}

		names = append(names, filepath.ToSlash(rel))
	}

	return names, nil
}

type fileBlob struct {
	f    fs.File
	size int64
}

func (b *fileBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return b.f.ReadAt(p, off)
}

func (b *fileBlob) Close() error {
	return b.f.Close()
}

func (b *fileBlob) Size() int64 {
	return b.size
}

func (b *fileBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if off < 0 || off >= b.size {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}

	if off+length > b.size {
		length = b.size - off
	}

	return io.NopCloser(io.NewSectionReader(b.f, off, length)), nil
}
