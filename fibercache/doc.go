// Package fibercache provides the read-through span cache that serves byte
// ranges of index files.
//
// A span is the unit of caching: the bytes at one (path, offset, length)
// triple, optionally decompressed by a codec before they enter the cache.
// Readers issue Get requests and never inspect cache internals; the cache
// owns the returned memory, deduplicates repeated requests for the same
// span, and coalesces concurrent misses for one span into a single
// underlying read.
//
// LRU is the built-in implementation: a byte-capacity LRU with optional
// admission control through a resource.Controller, so every cache in a
// process draws from one memory budget.
package fibercache
