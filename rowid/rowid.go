// Package rowid decodes row identifier entries from the row-id list
// section of an index file and collects them into sets for filtering.
package rowid

import (
	"encoding/binary"
	"errors"
)

// EntrySize is the wire size of one row id in the list section.
const EntrySize = 4

// ErrMisaligned is returned when a byte range does not hold a whole number
// of row id entries.
var ErrMisaligned = errors.New("rowid: byte length is not a multiple of the entry size")

// EntryCount returns the number of whole row ids encoded in b.
func EntryCount(b []byte) int {
	return len(b) / EntrySize
}

// Entry decodes the i-th row id of b. The caller must ensure i is in
// range.
func Entry(b []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(b[i*EntrySize:])
}

// Decode decodes b into row ids. len(b) must be a multiple of EntrySize.
func Decode(b []byte) ([]uint32, error) {
	if len(b)%EntrySize != 0 {
		return nil, ErrMisaligned
	}

	out := make([]uint32, len(b)/EntrySize)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*EntrySize:])
	}

	return out, nil
}
