package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/idxgo"
	"github.com/hupe1980/idxgo/codec"
)

// IndexFile assembles a complete index file image: version header, node
// section, row-id list section, footer and the trailer with the two length
// fields. Sections hold whatever bytes they are given; the trailer is
// always derived from the section lengths.
type IndexFile struct {
	Version uint32
	Nodes   []byte
	RowIDs  []byte
	Footer  []byte
}

// NewIndexFile returns a builder carrying the supported format version and
// empty sections.
func NewIndexFile() *IndexFile {
	return &IndexFile{Version: idxgo.FormatVersion}
}

// WithVersion sets the version word. Use a value other than
// idxgo.FormatVersion to build a version-mismatch fixture.
func (f *IndexFile) WithVersion(v uint32) *IndexFile {
	f.Version = v
	return f
}

// WithNodes sets the node section bytes.
func (f *IndexFile) WithNodes(b []byte) *IndexFile {
	f.Nodes = b
	return f
}

// WithRowIDs encodes ids as little-endian entries into the row-id list
// section.
func (f *IndexFile) WithRowIDs(ids ...uint32) *IndexFile {
	f.RowIDs = RowIDBytes(ids...)
	return f
}

// WithRowIDBytes sets the row-id list section to raw bytes.
func (f *IndexFile) WithRowIDBytes(b []byte) *IndexFile {
	f.RowIDs = b
	return f
}

// WithFooter sets the footer section bytes.
func (f *IndexFile) WithFooter(b []byte) *IndexFile {
	f.Footer = b
	return f
}

// Bytes assembles the file image.
func (f *IndexFile) Bytes() []byte {
	size := idxgo.VersionSize + len(f.Nodes) + len(f.RowIDs) + len(f.Footer) + idxgo.TrailerSize
	buf := make([]byte, 0, size)

	var version [idxgo.VersionSize]byte
	binary.LittleEndian.PutUint32(version[:], f.Version)
	buf = append(buf, version[:]...)

	buf = append(buf, f.Nodes...)
	buf = append(buf, f.RowIDs...)
	buf = append(buf, f.Footer...)

	var trailer [idxgo.TrailerSize]byte
	binary.LittleEndian.PutUint64(trailer[:idxgo.RowIDListLengthSize], uint64(len(f.RowIDs)))
	binary.LittleEndian.PutUint32(trailer[idxgo.RowIDListLengthSize:], uint32(len(f.Footer)))
	buf = append(buf, trailer[:]...)

	return buf
}

// WriteFile writes the image to dir/name and returns the full path.
func (f *IndexFile) WriteFile(tb testing.TB, dir, name string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, f.Bytes(), 0o600); err != nil {
		tb.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// RowIDBytes encodes ids as little-endian row-id entries.
func RowIDBytes(ids ...uint32) []byte {
	b := make([]byte, len(ids)*idxgo.IntSize)
	for i, id := range ids {
		binary.LittleEndian.PutUint32(b[i*idxgo.IntSize:], id)
	}
	return b
}

// Pattern returns n deterministic bytes derived from seed, recognizable
// enough to catch offset mistakes when sections are compared.
func Pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*31)
	}
	return b
}

// Compress runs raw through c and fails the test on error. Use it to store
// a section as one compressed block for whole-section reads with a codec.
func Compress(tb testing.TB, c codec.Codec, raw []byte) []byte {
	tb.Helper()

	out, err := c.Compress(raw)
	if err != nil {
		tb.Fatalf("compress with %s: %v", c.Name(), err)
	}
	return out
}
