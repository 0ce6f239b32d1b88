// Package mmap provides read-only memory-mapped file access.
//
// Index files are append-once and read many times, so mapping them lets
// the page cache serve repeated footer and node reads without copying
// through user-space buffers.
//
//	m, err := mmap.Open("index.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := make([]byte, 12)
//	_, err = m.ReadAt(buf, m.Size()-12)
//
// Advise passes access-pattern hints to the kernel where the platform
// supports them (madvise on Unix, no-op on Windows).
//
// Mapping is safe for concurrent reads. Close is idempotent, but callers
// must ensure no goroutine touches Bytes() after Close returns.
package mmap
