// Package blobstore provides storage abstraction for immutable index files.
//
// BlobStore is the interface for opening index files wherever they live.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped
//   - FileStore: local filesystem, positional reads through an injectable fs
//   - MemoryStore: in-memory store for tests
//   - s3.Store: Amazon S3 with ranged reads and parallel download
//   - minio.Store: MinIO and other S3-compatible object stores
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom backends:
//
//	type BlobStore interface {
//	    Open(ctx context.Context, name string) (Blob, error)
//	}
//
// Blobs expose context-threaded positional reads so remote backends can
// honor cancellation on every round trip:
//
//	type Blob interface {
//	    ReadAt(ctx context.Context, p []byte, off int64) (int, error)
//	    Size() int64
//	    Close() error
//	}
//
// Backends may additionally implement Mappable for zero-copy access,
// RangeReader for streaming section reads, and Localizer for efficient
// download to local storage.
package blobstore
