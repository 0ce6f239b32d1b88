package fibercache

import (
	"context"

	"github.com/hupe1980/idxgo/codec"
)

// Key identifies a cached span. Two requests for the same key are the same
// span and must be deduplicated.
type Key struct {
	// Path identifies the source file.
	Path string
	// Offset is the absolute byte offset of the span in the source.
	Offset int64
	// Length is the span length in source bytes.
	Length int64
}

// Source is the read surface the cache pulls from on a miss. It is
// satisfied by blobstore.Blob; the indirection keeps this package free of a
// dependency on any particular store.
type Source interface {
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
}

// Request describes one span to read through the cache.
type Request struct {
	// Source supplies the bytes on a miss.
	Source Source
	// Path identifies the source file for keying.
	Path string
	// Offset is the absolute byte offset in the source.
	Offset int64
	// Length is the number of source bytes to read.
	Length int64
	// Codec decompresses the fetched bytes before caching. Nil means the
	// bytes are stored as read.
	Codec codec.Codec
}

// Key returns the cache key for the request.
func (r Request) Key() Key {
	return Key{Path: r.Path, Offset: r.Offset, Length: r.Length}
}

// Span is an opaque handle to cached bytes. The underlying memory belongs
// to the cache; callers must not mutate or retain the slice beyond the
// cache's lifetime.
type Span struct {
	b []byte
}

// NewSpan wraps b in a Span. Intended for Cache implementations.
func NewSpan(b []byte) Span {
	return Span{b: b}
}

// Bytes returns the span's bytes. Treat the slice as read-only.
func (s Span) Bytes() []byte {
	return s.b
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return len(s.b)
}

// Cache is a read-through span cache for immutable index files.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the span for req, reading and optionally decompressing
	// it on a miss. Concurrent Gets for one key perform one underlying
	// read. A short read is an error, never a short span.
	Get(ctx context.Context, req Request) (Span, error)

	// Put inserts raw bytes for (path, offset) as-is and returns their
	// span. Used by callers that already hold the bytes.
	Put(ctx context.Context, path string, offset int64, raw []byte) Span

	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(Key) bool)

	// Stats returns cache statistics.
	Stats() (hits, misses int64)

	// Close releases any resources.
	Close() error
}
