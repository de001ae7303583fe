package stream

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_WriteRead(t *testing.T) {
	b := NewBuffer()

	n, err := b.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int64(5), b.Position())
	assert.Equal(t, 5, b.Len())

	_, err = b.Seek(0, io.SeekStart)
	require.NoError(t, err)

	out := make([]byte, 5)
	n, err = b.Read(out)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), out)
}

func TestBuffer_ReadPastEnd(t *testing.T) {
	b := NewBuffer()
	_, err := b.Write([]byte("abc"))
	require.NoError(t, err)

	_, err = b.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)

	// Seeking beyond the end is legal, like a file; reads there hit EOF.
	_, err = b.Seek(100, io.SeekStart)
	require.NoError(t, err)
	_, err = b.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)
}

func TestBuffer_WritePastEndZeroFills(t *testing.T) {
	b := NewBuffer()
	_, err := b.Seek(10, io.SeekStart)
	require.NoError(t, err)

	_, err = b.Write([]byte("ab"))
	require.NoError(t, err)

	assert.Equal(t, 12, b.Len())
	assert.Equal(t, make([]byte, 10), b.Bytes()[:10])
	assert.Equal(t, []byte("ab"), b.Bytes()[10:])
}

func TestBuffer_SeekWhence(t *testing.T) {
	b := NewBuffer()
	_, err := b.Write([]byte("0123456789"))
	require.NoError(t, err)

	pos, err := b.Seek(-4, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	pos, err = b.Seek(2, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos)

	_, err = b.Seek(-1, io.SeekStart)
	assert.Error(t, err)

	_, err = b.Seek(0, 42)
	assert.Error(t, err)
}

func TestBuffer_OverwriteInPlace(t *testing.T) {
	b := NewBuffer()
	_, err := b.Write([]byte("abcdef"))
	require.NoError(t, err)

	_, err = b.Seek(2, io.SeekStart)
	require.NoError(t, err)
	_, err = b.Write([]byte("XY"))
	require.NoError(t, err)

	assert.Equal(t, []byte("abXYef"), b.Bytes())
	assert.Equal(t, 6, b.Len())
}
