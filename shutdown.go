package idxgo

import "sync/atomic"

// ShutdownFlag is a process-wide teardown signal that readers can share.
// Set it from a signal handler and pass Check to WithShutdownCheck; close
// failures observed after Set are discarded instead of logged.
type ShutdownFlag struct {
	v atomic.Bool
}

// Set marks the process as shutting down.
func (f *ShutdownFlag) Set() {
	f.v.Store(true)
}

// Check reports whether Set has been called. The method value is a valid
// predicate for WithShutdownCheck.
func (f *ShutdownFlag) Check() bool {
	return f.v.Load()
}
