// Package testutil provides testing utilities for idxgo.
//
// This package is intended for use in tests and benchmarks only.
// It builds well-formed (and deliberately malformed) index file images:
// version header, node section, row-id list, footer and trailer, laid out
// exactly the way the reader expects them.
//
// # Building a File Image
//
//	img := testutil.NewIndexFile().
//	    WithNodes(testutil.Pattern(128, 0x11)).
//	    WithRowIDs(1, 2, 3, 42).
//	    WithFooter([]byte("root")).
//	    Bytes()
//
// # Serving It to a Reader
//
//	store := blobstore.NewMemoryStore()
//	store.Put("t.idx", img)
//	r := idxgo.NewReader(store, "t.idx")
//
// # Malformed Files
//
//	testutil.NewIndexFile().WithVersion(99)   // version mismatch
//	img[:10]                                  // truncated below the minimum
package testutil
