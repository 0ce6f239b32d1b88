// Package fs abstracts the handful of file system operations idxgo needs
// to open and read index files, so tests can substitute faulty or otherwise
// instrumented implementations.
//
// The interfaces are deliberately tiny. Readers open a file once, issue
// positional reads against it, and close it; FileSystem and File expose
// exactly that surface. LocalFS is the production implementation backed by
// the os package. FaultyFS wraps another FileSystem and injects errors by
// path pattern, which is how the close and read failure policies of the
// reader are exercised in tests.
//
// The interfaces intentionally omit context.Context: the underlying os
// calls do not honor cancellation, and pretending otherwise would only
// hide where cancellation is actually checked (in the callers, between
// reads).
package fs
