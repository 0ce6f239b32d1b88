// Package idxgo reads self-describing, backward-laid-out binary index files.
//
// An index file carries four sections and no table of contents: a fixed
// version header at offset 0, the opaque B-tree node section, the row-id
// list section and the footer. The last twelve bytes form a trailer with
// two length fields, and every section offset is derived backward from
// them. The reader resolves that layout lazily and exactly once, then
// serves section reads in any order through a deduplicating span cache.
//
// # Quick Start
//
// Local mode:
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./data")
//	r, _ := idxgo.Open(ctx, store, "orders.idx")
//	defer r.Close()
//
//	v, _ := r.ReadVersion(ctx)
//	if err := idxgo.CheckVersion(v); err != nil {
//	    return err
//	}
//	footer, _ := r.ReadFooter(ctx)
//
// Cloud mode:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("indexes/"))
//	r, _ := idxgo.Open(ctx, s3Store, "orders.idx",
//	    idxgo.WithCache(sharedCache),
//	    idxgo.WithCodec(codec.Zstd{}),
//	)
//
// # Partitioned Row-ID Reads
//
// The row-id list is read in fixed-size partitions so a query loads only
// the partitions it needs, and each partition is an independent cache
// entry:
//
//	n, _ := r.PartitionCount(ctx)
//	_ = r.Prefetch(ctx, 0, 1, 2)
//	for part := range n {
//	    span, _ := r.ReadRowIDListPartition(ctx, part)
//	    ids, _ := rowid.Decode(span.Bytes())
//	    // ...
//	}
//
// ReadRowIDListPart (raw byte ranges, uncached) and ReadRowIDList (whole
// section) remain for legacy callers.
//
// # Error Handling
//
// Structural problems with a file are format errors and satisfy
// errors.Is(err, ErrFormat); they are permanent for that file. Everything
// else a read returns is an I/O error and may be retried by the caller.
// Close never returns an error: close failures are logged, or discarded
// when the configured shutdown predicate reports teardown.
//
// # Key Features
//
//   - Backward layout resolution from a 12-byte trailer, memoized
//   - Partitioned row-id reads sized for cache-friendly access
//   - Read-through span cache with request deduplication (fibercache)
//   - Per-read decompression (lz4, zstd, snappy) via the codec package
//   - Local mmap, plain file, S3 and MinIO backends (blobstore)
//   - Prefetch with memory/IO budgets (resource)
package idxgo
