package idxgo

import (
	"encoding/binary"
)

// File format constants.
//
// An index file is laid out backward: the version header sits at offset 0,
// followed by the node section, the row-id list section and the footer, and
// the last TrailerSize bytes hold the two length fields everything else is
// derived from. All integers are little-endian on both the write and the
// read path.
const (
	// VersionSize is the size of the version header in bytes.
	VersionSize = 4

	// FooterLengthSize is the size of the trailer's footer-length field in bytes.
	FooterLengthSize = 4

	// RowIDListLengthSize is the size of the trailer's row-id-list-length field in bytes.
	RowIDListLengthSize = 8

	// IntSize is the size of one row-id entry in bytes.
	IntSize = 4

	// TrailerSize is the combined size of the two trailing length fields.
	TrailerSize = RowIDListLengthSize + FooterLengthSize

	// MinFileSize is the smallest well-formed index file: a version header
	// plus a trailer, with every section empty.
	MinFileSize = VersionSize + TrailerSize

	// FormatVersion is the single format version this reader supports.
	FormatVersion uint32 = 1

	// DefaultRowIDPartitionEntries is the default number of row-id entries
	// per partition (4 MiB of raw entries at IntSize bytes each).
	DefaultRowIDPartitionEntries = 1 << 20

	// DefaultCacheBytes is the capacity of the cache a Reader creates for
	// itself when none is injected.
	DefaultCacheBytes = 64 << 20
)

// Layout holds the resolved section offsets of one index file. All offsets
// are absolute byte positions.
type Layout struct {
	FileLength      int64 // total file size in bytes
	NodesIndex      int64 // start of the node section
	RowIDListIndex  int64 // start of the row-id list section
	FooterIndex     int64 // start of the footer section
	RowIDListLength int64 // row-id list section size in bytes
	FooterLength    int64 // footer section size in bytes
}

// CheckVersion validates an observed format version number against
// FormatVersion. A mismatch is permanent for that file; there is no
// versioned fallback.
func CheckVersion(v uint32) error {
	if v != FormatVersion {
		return &IncompatibleVersionError{Got: v, Want: FormatVersion}
	}
	return nil
}

// resolveLayout derives all section offsets from the file length and the
// TrailerSize trailer bytes. The derivation formulas live here and nowhere
// else, so a section reordering only ever touches this function.
func resolveLayout(fileLength int64, trailer []byte) (Layout, error) {
	if fileLength < MinFileSize {
		return Layout{}, &FileTooSmallError{Size: fileLength}
	}

	rowIDListLength := binary.LittleEndian.Uint64(trailer[:RowIDListLengthSize])
	footerLength := int64(binary.LittleEndian.Uint32(trailer[RowIDListLengthSize:TrailerSize]))

	l := Layout{
		FileLength:      fileLength,
		NodesIndex:      VersionSize,
		RowIDListLength: int64(rowIDListLength),
		FooterLength:    footerLength,
	}

	// The list cannot be larger than the file; checking in uint64 space
	// also rules out lengths that would overflow the index arithmetic below.
	if rowIDListLength > uint64(fileLength) {
		return Layout{}, &CorruptLayoutError{Layout: l}
	}

	trailerOffset := fileLength - TrailerSize
	l.FooterIndex = trailerOffset - footerLength
	l.RowIDListIndex = l.FooterIndex - l.RowIDListLength

	// Sections must be contiguous, non-overlapping and ordered
	// Node -> RowIDList -> Footer -> Trailer.
	if l.RowIDListIndex < l.NodesIndex || l.FooterIndex < l.RowIDListIndex || trailerOffset < l.FooterIndex {
		return Layout{}, &CorruptLayoutError{Layout: l}
	}

	return l, nil
}

// partitionCount returns the number of partitions a row-id list of
// rowIDListLength bytes splits into at partSize bytes per partition.
func partitionCount(rowIDListLength, partSize int64) int {
	if rowIDListLength <= 0 {
		return 0
	}
	return int((rowIDListLength + partSize - 1) / partSize)
}

// partitionLength returns the byte length of partition part. Every
// partition is exactly partSize bytes except the last, which holds the
// remainder: rowIDListLength - (count-1)*partSize. When the list divides
// evenly the last partition is a full partSize.
func partitionLength(rowIDListLength, partSize int64, part int) int64 {
	count := partitionCount(rowIDListLength, partSize)
	if part == count-1 {
		return rowIDListLength - int64(count-1)*partSize
	}
	return partSize
}
