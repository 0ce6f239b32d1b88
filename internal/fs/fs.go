package fs

import (
	"io"
	"os"
)

// File is the read-side handle returned by FileSystem.Open. Positional
// reads keep the handle free of seek state, so a single File can serve
// concurrent readers.
type File interface {
	io.ReaderAt
	io.Closer

	// Stat reports metadata for the open file, most importantly its size.
	Stat() (os.FileInfo, error)
}

// FileSystem is the minimal surface idxgo needs from a file system.
type FileSystem interface {
	// Open opens the named file for reading.
	Open(name string) (File, error)

	// Stat reports metadata for the named file without opening it.
	Stat(name string) (os.FileInfo, error)
}

// LocalFS implements FileSystem on top of the os package.
type LocalFS struct{}

// Open opens the named file for reading.
func (LocalFS) Open(name string) (File, error) {
	return os.Open(name)
}

// Stat reports metadata for the named file.
func (LocalFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Default is the FileSystem used when none is configured.
var Default FileSystem = LocalFS{}
