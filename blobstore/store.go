package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for accessing immutable index files.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to an index file.
type Blob interface {
	// ReadAt reads len(p) bytes starting at offset off. It returns io.EOF
	// when fewer bytes were read because the end of the blob was reached.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)

	// Size returns the size of the blob in bytes.
	Size() int64

	io.Closer
}

// Mappable is an optional interface for Blobs that support memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice. The slice is valid until
	// the Blob is closed. This is a zero-copy operation if supported.
	Bytes() ([]byte, error)
}

// RangeReader is an optional interface for Blobs that can stream a byte
// range. Remote backends serve it with a single ranged request, which
// beats repeated ReadAt calls for large sections.
type RangeReader interface {
	// ReadRange returns a reader over [off, off+length). The range is
	// clamped to the blob size.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
}

// Lister is an optional interface for stores that can enumerate blobs.
type Lister interface {
	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Localizer is an optional interface for stores that can download a blob
// to a local destination efficiently, typically for later memory-mapped
// access.
type Localizer interface {
	// Download writes the named blob to w and returns the byte count.
	Download(ctx context.Context, name string, w io.WriterAt) (int64, error)
}
