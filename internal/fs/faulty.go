package fs

import (
	"os"
	"strings"
	"sync"
)

// Fault describes the failures to inject for files whose path matches a
// rule. The zero value injects nothing.
type Fault struct {
	// FailOnOpen makes Open return Err instead of a File.
	FailOnOpen bool

	// FailOnClose makes Close return Err after closing the underlying file.
	FailOnClose bool

	// FailReadAt makes every ReadAt return Err.
	FailReadAt bool

	// ShortReadAt, when > 0, truncates each ReadAt to at most this many
	// bytes, returning io.ErrUnexpectedEOF semantics to the caller via a
	// short count and Err.
	ShortReadAt int64

	// Err is the error returned by the failing operations. Required when
	// any of the Fail fields is set.
	Err error
}

// FaultyFS wraps another FileSystem and injects faults into files whose
// path contains a registered substring. It exists for tests.
type FaultyFS struct {
	inner FileSystem

	mu    sync.Mutex
	rules map[string]Fault
}

// NewFaultyFS wraps inner with an empty rule set.
func NewFaultyFS(inner FileSystem) *FaultyFS {
	return &FaultyFS{
		inner: inner,
		rules: make(map[string]Fault),
	}
}

// SetFault registers a fault for every path containing pattern.
func (f *FaultyFS) SetFault(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rules[pattern] = fault
}

// ClearFault removes the rule for pattern.
func (f *FaultyFS) ClearFault(pattern string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.rules, pattern)
}

func (f *FaultyFS) lookup(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for pattern, fault := range f.rules {
		if strings.Contains(name, pattern) {
			return fault, true
		}
	}

	return Fault{}, false
}

// Open opens the named file, honoring any FailOnOpen rule.
func (f *FaultyFS) Open(name string) (File, error) {
	fault, ok := f.lookup(name)
	if ok && fault.FailOnOpen {
		return nil, fault.Err
	}

	file, err := f.inner.Open(name)
	if err != nil {
		return nil, err
	}

	if !ok {
		return file, nil
	}

	return &faultyFile{inner: file, fault: fault}, nil
}

// Stat reports metadata via the wrapped FileSystem.
func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.inner.Stat(name)
}

type faultyFile struct {
	inner File
	fault Fault
}

func (f *faultyFile) ReadAt(p []byte, off int64) (int, error) {
	if f.fault.FailReadAt {
		return 0, f.fault.Err
	}

	if f.fault.ShortReadAt > 0 && int64(len(p)) > f.fault.ShortReadAt {
		n, err := f.inner.ReadAt(p[:f.fault.ShortReadAt], off)
		if err != nil {
			return n, err
		}

		return n, f.fault.Err
	}

	return f.inner.ReadAt(p, off)
}

func (f *faultyFile) Close() error {
	err := f.inner.Close()

	if f.fault.FailOnClose {
		if err == nil {
			err = f.fault.Err
		}

		return err
	}

	return err
}

func (f *faultyFile) Stat() (os.FileInfo, error) {
	return f.inner.Stat()
}
