// Package s3 provides an S3 implementation of the blobstore.BlobStore
// interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("indexes/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	r := idxgo.NewReader(store, "btree-0001.idx")
//
// # Features
//
//   - Ranged GETs so a footer probe never fetches the whole object
//   - Parallel multipart download for localizing an index before mmap
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
