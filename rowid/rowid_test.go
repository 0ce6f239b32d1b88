package rowid

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(ids ...uint32) []byte {
	b := make([]byte, len(ids)*EntrySize)
	for i, id := range ids {
		binary.LittleEndian.PutUint32(b[i*EntrySize:], id)
	}

	return b
}

func TestDecode(t *testing.T) {
	b := encode(7, 0, 42, 1<<31)

	ids, err := Decode(b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 0, 42, 1 << 31}, ids)

	assert.Equal(t, 4, EntryCount(b))
	assert.Equal(t, uint32(42), Entry(b, 2))
}

func TestDecode_Empty(t *testing.T) {
	ids, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Zero(t, EntryCount(nil))
}

func TestDecode_Misaligned(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestSet(t *testing.T) {
	s := NewSet()
	assert.True(t, s.IsEmpty())

	require.NoError(t, s.AddPartition(encode(3, 1, 2)))
	require.NoError(t, s.AddPartition(encode(2, 100)))

	assert.False(t, s.IsEmpty())
	assert.Equal(t, uint64(4), s.Cardinality())
	assert.True(t, s.Contains(100))
	assert.False(t, s.Contains(4))

	var got []uint32
	for id := range s.Iterate() {
		got = append(got, id)
	}
	assert.Equal(t, []uint32{1, 2, 3, 100}, got)
}

func TestSet_AddPartition_Misaligned(t *testing.T) {
	s := NewSet()
	assert.ErrorIs(t, s.AddPartition([]byte{9}), ErrMisaligned)
	assert.True(t, s.IsEmpty())
}

func TestSet_Algebra(t *testing.T) {
	a := NewSet()
	require.NoError(t, a.AddPartition(encode(1, 2, 3)))

	b := NewSet()
	require.NoError(t, b.AddPartition(encode(2, 3, 4)))

	union := a.Clone()
	union.Union(b)
	assert.Equal(t, uint64(4), union.Cardinality())

	inter := a.Clone()
	inter.Intersect(b)
	assert.Equal(t, uint64(2), inter.Cardinality())
	assert.True(t, inter.Contains(2))
	assert.True(t, inter.Contains(3))
	assert.False(t, inter.Contains(1))

	// Clone is deep: the original is untouched.
	assert.Equal(t, uint64(3), a.Cardinality())
}

func TestSet_IterateEarlyStop(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.AddPartition(encode(1, 2, 3, 4, 5)))

	var seen int
	for range s.Iterate() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
