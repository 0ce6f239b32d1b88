package idxgo

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/idxgo/blobstore"
	"github.com/hupe1980/idxgo/fibercache"
)

const defaultPrefetchWorkers = 4

// Reader serves the sections of a single index file: the version word, the
// node section, the row-id list (whole, partitioned, or by raw byte range)
// and the footer.
//
// The underlying blob is opened and the layout resolved lazily, on first
// use, exactly once. A Reader is safe for concurrent use once constructed:
// all reads are positional and resolution is guarded.
//
// Returned spans are owned by the cache. Callers must not mutate them or
// retain them past the cache's lifetime.
type Reader struct {
	store blobstore.BlobStore
	path  string
	opts  options

	partSize int64 // bytes per row-id partition

	openOnce sync.Once
	blob     blobstore.Blob
	layout   Layout
	openErr  error

	closeOnce sync.Once
	closed    atomic.Bool

	ownsCache bool
}

// NewReader creates a Reader for the named index file in store. The file
// is not touched until the first read; construction never fails.
func NewReader(store blobstore.BlobStore, path string, optFns ...Option) *Reader {
	o := applyOptions(optFns)

	r := &Reader{
		store:    store,
		path:     path,
		opts:     o,
		partSize: int64(o.partitionEntries) * IntSize,
	}

	if r.opts.cache == nil {
		r.opts.cache = fibercache.NewLRU(DefaultCacheBytes, o.resourceController)
		r.ownsCache = true
	}

	return r
}

// Open creates a Reader and eagerly resolves the file layout, so that open
// and format errors surface immediately instead of on the first read.
func Open(ctx context.Context, store blobstore.BlobStore, path string, optFns ...Option) (*Reader, error) {
	r := NewReader(store, path, optFns...)
	if _, err := r.Layout(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the blob name the Reader was created with.
func (r *Reader) Path() string {
	return r.path
}

// Layout returns the resolved section layout. The trailer is read exactly
// once; every subsequent call returns the memoized result.
func (r *Reader) Layout(ctx context.Context) (Layout, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return Layout{}, err
	}
	return r.layout, nil
}

// ReadVersion reads the raw version word at the start of the file. Parsing
// the header beyond the number is the caller's concern; pair with
// CheckVersion to validate it.
func (r *Reader) ReadVersion(ctx context.Context) (uint32, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return 0, err
	}

	start := time.Now()
	var buf [VersionSize]byte
	err := readFull(ctx, r.blob, buf[:], 0)
	r.record(ctx, "version", 0, VersionSize, start, err)
	if err != nil {
		return 0, fmt.Errorf("idxgo: failed to read version of %q: %w", r.path, err)
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadFooter reads the footer section: exactly FooterLength bytes at
// FooterIndex. The read goes through the cache with the configured codec,
// so repeated calls for the same file dedupe there, not here.
func (r *Reader) ReadFooter(ctx context.Context) (fibercache.Span, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return fibercache.Span{}, err
	}

	start := time.Now()
	span, err := r.cached(ctx, r.layout.FooterIndex, r.layout.FooterLength)
	r.record(ctx, "footer", r.layout.FooterIndex, r.layout.FooterLength, start, err)
	if err != nil {
		return fibercache.Span{}, fmt.Errorf("idxgo: failed to read footer of %q: %w", r.path, err)
	}

	return span, nil
}

// ReadNode reads size bytes at offset within the node section, through the
// cache with the configured codec. Valid node offsets and sizes come from
// the footer and the node bytes themselves; no node-structure validation
// happens here.
func (r *Reader) ReadNode(ctx context.Context, offset, size int64) (fibercache.Span, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return fibercache.Span{}, err
	}
	if offset < 0 || size < 0 {
		return fibercache.Span{}, fmt.Errorf("idxgo: invalid node range: offset=%d size=%d", offset, size)
	}

	start := time.Now()
	span, err := r.cached(ctx, r.layout.NodesIndex+offset, size)
	r.record(ctx, "node", r.layout.NodesIndex+offset, size, start, err)
	if err != nil {
		return fibercache.Span{}, fmt.Errorf("idxgo: failed to read node at %d of %q: %w", offset, r.path, err)
	}

	return span, nil
}

// PartitionCount returns the number of partitions the row-id list splits
// into under the configured partition size. Zero for an empty list.
func (r *Reader) PartitionCount(ctx context.Context) (int, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return 0, err
	}
	return partitionCount(r.layout.RowIDListLength, r.partSize), nil
}

// ReadRowIDListPartition reads one partition of the row-id list, through
// the cache with the configured codec. Every partition is a full partition
// size except the last, which holds the remainder.
//
// This is the primary access path: it loads only the partitions a query
// needs instead of the whole list.
func (r *Reader) ReadRowIDListPartition(ctx context.Context, part int) (fibercache.Span, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return fibercache.Span{}, err
	}

	count := partitionCount(r.layout.RowIDListLength, r.partSize)
	if part < 0 || part >= count {
		return fibercache.Span{}, &PartitionOutOfRangeError{Part: part, Count: count}
	}

	length := partitionLength(r.layout.RowIDListLength, r.partSize, part)
	if length > math.MaxInt32 {
		return fibercache.Span{}, &PartitionTooLargeError{Length: length}
	}

	offset := r.layout.RowIDListIndex + int64(part)*r.partSize

	start := time.Now()
	span, err := r.cached(ctx, offset, length)
	r.record(ctx, "rowid_partition", offset, length, start, err)
	if err != nil {
		return fibercache.Span{}, fmt.Errorf("idxgo: failed to read row-id partition %d of %q: %w", part, r.path, err)
	}

	return span, nil
}

// ReadRowIDListPart reads size bytes at offset within the row-id list
// section. The bytes are read synchronously from the blob into a fresh
// buffer and then inserted into the cache as-is; the codec is never
// applied on this path. part only tags logs and metrics.
//
// Retained for callers that address the section by explicit byte offsets.
// New code should use ReadRowIDListPartition.
func (r *Reader) ReadRowIDListPart(ctx context.Context, part int, offset, size int64) (fibercache.Span, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return fibercache.Span{}, err
	}
	if offset < 0 || size < 0 {
		return fibercache.Span{}, fmt.Errorf("idxgo: invalid row-id range: offset=%d size=%d", offset, size)
	}
	if size > math.MaxInt32 {
		return fibercache.Span{}, &PartitionTooLargeError{Length: size}
	}

	abs := r.layout.RowIDListIndex + offset

	start := time.Now()
	buf := make([]byte, size)
	err := readFull(ctx, r.blob, buf, abs)
	r.record(ctx, "rowid_part", abs, size, start, err)
	if err != nil {
		return fibercache.Span{}, fmt.Errorf("idxgo: failed to read row-id part %d of %q: %w", part, r.path, err)
	}

	return r.opts.cache.Put(ctx, r.path, abs, buf), nil
}

// ReadRowIDList reads the entire row-id list section in one span, through
// the cache with the configured codec.
//
// Deprecated: this defeats partition-level caching and materializes the
// whole section in memory. Use ReadRowIDListPartition.
func (r *Reader) ReadRowIDList(ctx context.Context) (fibercache.Span, error) {
	if err := r.ensureOpen(ctx); err != nil {
		return fibercache.Span{}, err
	}
	if r.layout.RowIDListLength > math.MaxInt32 {
		return fibercache.Span{}, &PartitionTooLargeError{Length: r.layout.RowIDListLength}
	}

	start := time.Now()
	span, err := r.cached(ctx, r.layout.RowIDListIndex, r.layout.RowIDListLength)
	r.record(ctx, "rowid_list", r.layout.RowIDListIndex, r.layout.RowIDListLength, start, err)
	if err != nil {
		return fibercache.Span{}, fmt.Errorf("idxgo: failed to read row-id list of %q: %w", r.path, err)
	}

	return span, nil
}

// Prefetch warms the cache with the named row-id partitions. Fetches run
// concurrently, bounded by the prefetch worker limit and charged against
// the resource controller's background-worker and IO budgets when one is
// configured. The first error cancels the remaining fetches.
func (r *Reader) Prefetch(ctx context.Context, parts ...int) error {
	if err := r.ensureOpen(ctx); err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}

	count := partitionCount(r.layout.RowIDListLength, r.partSize)
	for _, part := range parts {
		if part < 0 || part >= count {
			return &PartitionOutOfRangeError{Part: part, Count: count}
		}
	}

	rc := r.opts.resourceController

	start := time.Now()
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.prefetchWorkers)
	for _, part := range parts {
		g.Go(func() error {
			if err := rc.AcquireBackground(gctx); err != nil {
				failed.Add(1)
				return err
			}
			defer rc.ReleaseBackground()

			if err := rc.AcquireIO(gctx, int(partitionLength(r.layout.RowIDListLength, r.partSize, part))); err != nil {
				failed.Add(1)
				return err
			}

			if _, err := r.ReadRowIDListPartition(gctx, part); err != nil {
				failed.Add(1)
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	r.opts.metricsCollector.RecordPrefetch(len(parts), int(failed.Load()), time.Since(start))
	r.opts.logger.LogPrefetch(ctx, len(parts), int(failed.Load()))

	return err
}

// Close releases the underlying blob exactly once. It never returns a
// non-nil error: a close failure during process shutdown is discarded
// silently, any other close failure is logged as a warning. Safe to call
// multiple times and safe to call on an unopened Reader.
func (r *Reader) Close() error {
	r.closeOnce.Do(func() {
		r.closed.Store(true)

		// Claim the open slot so a late first read fails with ErrClosed
		// instead of opening a blob nobody will close.
		r.openOnce.Do(func() {
			r.openErr = ErrClosed
		})

		if r.blob != nil {
			if err := r.blob.Close(); err != nil {
				if r.opts.shuttingDown == nil || !r.opts.shuttingDown() {
					r.opts.logger.LogCloseError(context.Background(), r.path, err)
				}
			}
			r.blob = nil
		}

		if r.ownsCache {
			_ = r.opts.cache.Close()
		}
	})

	return nil
}

// CacheStats returns the hit and miss counters of the underlying cache.
func (r *Reader) CacheStats() (hits, misses int64) {
	return r.opts.cache.Stats()
}

func (r *Reader) ensureOpen(ctx context.Context) error {
	if r.closed.Load() {
		return ErrClosed
	}

	r.openOnce.Do(func() {
		start := time.Now()
		r.openErr = r.open(ctx)
		r.opts.metricsCollector.RecordOpen(time.Since(start), r.openErr)
		r.opts.logger.LogOpen(ctx, r.path, r.layout, r.openErr)
	})

	return r.openErr
}

// open opens the blob and resolves the layout from the trailer. Called at
// most once, from ensureOpen.
func (r *Reader) open(ctx context.Context) error {
	blob, err := r.store.Open(ctx, r.path)
	if err != nil {
		return fmt.Errorf("idxgo: failed to open %q: %w", r.path, err)
	}

	size := blob.Size()
	if size < MinFileSize {
		_ = blob.Close()
		return &FileTooSmallError{Size: size}
	}

	trailer := make([]byte, TrailerSize)
	if err := readFull(ctx, blob, trailer, size-TrailerSize); err != nil {
		_ = blob.Close()
		return fmt.Errorf("idxgo: failed to read trailer of %q: %w", r.path, err)
	}

	layout, err := resolveLayout(size, trailer)
	if err != nil {
		_ = blob.Close()
		return err
	}

	r.blob = blob
	r.layout = layout

	return nil
}

// cached issues one read request through the cache with the configured
// codec attached.
func (r *Reader) cached(ctx context.Context, offset, length int64) (fibercache.Span, error) {
	return r.opts.cache.Get(ctx, fibercache.Request{
		Source: r.blob,
		Path:   r.path,
		Offset: offset,
		Length: length,
		Codec:  r.opts.codec,
	})
}

func (r *Reader) record(ctx context.Context, section string, offset, length int64, start time.Time, err error) {
	bytes := 0
	if err == nil {
		bytes = int(length)
	}
	r.opts.metricsCollector.RecordRead(section, bytes, time.Since(start), err)
	r.opts.logger.LogSectionRead(ctx, section, offset, length, err)
}

// readFull reads exactly len(p) bytes at off. A short read is an error,
// never a short buffer.
func readFull(ctx context.Context, blob blobstore.Blob, p []byte, off int64) error {
	n, err := blob.ReadAt(ctx, p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("read %d of %d bytes at offset %d: %w", n, len(p), off, err)
}
