package idxgo

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trailer(rowIDListLength uint64, footerLength uint32) []byte {
	b := make([]byte, TrailerSize)
	binary.LittleEndian.PutUint64(b[:RowIDListLengthSize], rowIDListLength)
	binary.LittleEndian.PutUint32(b[RowIDListLengthSize:], footerLength)
	return b
}

func TestResolveLayout(t *testing.T) {
	// The canonical example: 1000 bytes, 200 bytes of row ids, 50 bytes of
	// footer. The trailer field sits at 988, the footer starts at
	// 988-50=938, the row-id list at 938-200=738.
	l, err := resolveLayout(1000, trailer(200, 50))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), l.FileLength)
	assert.Equal(t, int64(VersionSize), l.NodesIndex)
	assert.Equal(t, int64(738), l.RowIDListIndex)
	assert.Equal(t, int64(938), l.FooterIndex)
	assert.Equal(t, int64(200), l.RowIDListLength)
	assert.Equal(t, int64(50), l.FooterLength)

	// Sections stay ordered.
	assert.LessOrEqual(t, l.NodesIndex, l.RowIDListIndex)
	assert.LessOrEqual(t, l.RowIDListIndex, l.FooterIndex)
	assert.LessOrEqual(t, l.FooterIndex, l.FileLength-TrailerSize)
}

func TestResolveLayoutMinimal(t *testing.T) {
	// Smallest well-formed file: every section empty.
	l, err := resolveLayout(MinFileSize, trailer(0, 0))
	require.NoError(t, err)

	assert.Equal(t, int64(VersionSize), l.NodesIndex)
	assert.Equal(t, int64(VersionSize), l.RowIDListIndex)
	assert.Equal(t, int64(VersionSize), l.FooterIndex)
}

func TestResolveLayoutTooSmall(t *testing.T) {
	_, err := resolveLayout(MinFileSize-1, trailer(0, 0))

	var tooSmall *FileTooSmallError
	require.ErrorAs(t, err, &tooSmall)
	assert.Equal(t, int64(MinFileSize-1), tooSmall.Size)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestResolveLayoutCorrupt(t *testing.T) {
	tests := []struct {
		name            string
		fileLength      int64
		rowIDListLength uint64
		footerLength    uint32
	}{
		{name: "footer overruns node section", fileLength: 100, rowIDListLength: 0, footerLength: 90},
		{name: "row-id list overruns node section", fileLength: 100, rowIDListLength: 90, footerLength: 0},
		{name: "combined sections overrun", fileLength: 100, rowIDListLength: 50, footerLength: 40},
		{name: "row-id list larger than file", fileLength: 100, rowIDListLength: 101, footerLength: 0},
		{name: "row-id list length overflows", fileLength: 100, rowIDListLength: 1 << 63, footerLength: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveLayout(tt.fileLength, trailer(tt.rowIDListLength, tt.footerLength))

			var corrupt *CorruptLayoutError
			require.ErrorAs(t, err, &corrupt)
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestResolveLayoutBoundary(t *testing.T) {
	// Sections may exactly fill the space between header and trailer.
	l, err := resolveLayout(100, trailer(50, 100-VersionSize-TrailerSize-50))
	require.NoError(t, err)

	assert.Equal(t, int64(VersionSize), l.RowIDListIndex)
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, CheckVersion(FormatVersion))

	for _, v := range []uint32{0, FormatVersion + 1, 42, ^uint32(0)} {
		err := CheckVersion(v)

		var incompatible *IncompatibleVersionError
		require.ErrorAs(t, err, &incompatible, "version %d", v)
		assert.Equal(t, v, incompatible.Got)
		assert.Equal(t, FormatVersion, incompatible.Want)
		assert.ErrorIs(t, err, ErrFormat)
	}
}

func TestPartitionCount(t *testing.T) {
	assert.Equal(t, 0, partitionCount(0, 40))
	assert.Equal(t, 1, partitionCount(1, 40))
	assert.Equal(t, 1, partitionCount(40, 40))
	assert.Equal(t, 2, partitionCount(41, 40))
	assert.Equal(t, 5, partitionCount(200, 40))
	assert.Equal(t, 5, partitionCount(190, 40))
}

func TestPartitionLength(t *testing.T) {
	// 200 bytes at 40 per partition divide evenly: the last partition is a
	// full 40 bytes, not zero.
	for part := range 5 {
		assert.Equal(t, int64(40), partitionLength(200, 40, part), "part %d", part)
	}

	// 190 bytes leave a 30-byte remainder in the last partition.
	for part := range 4 {
		assert.Equal(t, int64(40), partitionLength(190, 40, part), "part %d", part)
	}
	assert.Equal(t, int64(30), partitionLength(190, 40, 4))
}

func TestPartitionLengthsSumToListLength(t *testing.T) {
	for _, listLength := range []int64{1, 39, 40, 41, 190, 200, 799, 800, 801} {
		var sum int64
		count := partitionCount(listLength, 40)
		for part := range count {
			sum += partitionLength(listLength, 40, part)
		}
		assert.Equal(t, listLength, sum, "listLength %d", listLength)
	}
}

func TestErrorsUnwrapToFormat(t *testing.T) {
	for _, err := range []error{
		&IncompatibleVersionError{Got: 2, Want: 1},
		&FileTooSmallError{Size: 3},
		&CorruptLayoutError{},
		&PartitionTooLargeError{Length: 1 << 40},
		&PartitionOutOfRangeError{Part: 9, Count: 2},
	} {
		assert.ErrorIs(t, err, ErrFormat, "%T", err)
		assert.NotErrorIs(t, err, ErrClosed, "%T", err)
	}

	assert.False(t, errors.Is(ErrClosed, ErrFormat))
}
