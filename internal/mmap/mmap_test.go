package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_OpenReadClose(t *testing.T) {
	content := []byte("Hello, Mmap!")
	name := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(name, content, 0o600))

	m, err := Open(name)
	require.NoError(t, err)

	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())

	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Mmap!", string(buf))

	// Past the end.
	n, err = m.ReadAt(make([]byte, 4), 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	// Partial read at the tail.
	buf3 := make([]byte, 10)
	n, err = m.ReadAt(buf3, 7)
	assert.Equal(t, 5, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "Mmap!", string(buf3[:n]))

	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestMapping_Advise(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(name, make([]byte, 4096), 0o600))

	m, err := Open(name)
	require.NoError(t, err)

	defer m.Close()

	require.NoError(t, m.Advise(AccessRandom))
	require.NoError(t, m.Advise(AccessSequential))
	require.NoError(t, m.Advise(AccessWillNeed))
}

func TestMapping_AfterClose(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(name, []byte("data"), 0o600))

	m, err := Open(name)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	// Close is idempotent.
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMapping_EmptyFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(name, nil, 0o600))

	m, err := Open(name)
	require.NoError(t, err)

	defer m.Close()

	assert.Equal(t, 0, m.Size())

	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.Equal(t, io.EOF, err)
}
