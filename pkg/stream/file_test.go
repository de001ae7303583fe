package stream

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_AppendAndPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.rlog")

	sink, err := NewFileSink(FileSinkConfig{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sink.Position())

	_, err = sink.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = sink.Write([]byte("world"))
	require.NoError(t, err)
	assert.Equal(t, int64(11), sink.Position())

	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)
}

func TestFileSink_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "test.rlog")

	sink, err := NewFileSink(FileSinkConfig{FilePath: path})
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	assert.FileExists(t, path)
}

func TestFileSink_ResumesAtFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.rlog")

	sink, err := NewFileSink(FileSinkConfig{FilePath: path})
	require.NoError(t, err)
	_, err = sink.Write([]byte("abcde"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	reopened, err := NewFileSink(FileSinkConfig{FilePath: path})
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, int64(5), reopened.Position())
}

func TestFileSink_SequenceKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.rlog")

	sink, err := NewFileSink(FileSinkConfig{FilePath: path})
	require.NoError(t, err)
	defer sink.Close()

	assert.Equal(t, "", sink.LastSequenceKey())

	_, err = sink.WriteSequenced([]byte("payload"), "key-1")
	require.NoError(t, err)
	assert.Equal(t, "key-1", sink.LastSequenceKey())

	_, err = sink.WriteSequenced([]byte("payload"), "key-2")
	require.NoError(t, err)
	assert.Equal(t, "key-2", sink.LastSequenceKey())
}

func TestFileSink_SyncMakesBytesVisible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.rlog")

	sink, err := NewFileSink(FileSinkConfig{FilePath: path, BufferSize: 1 << 20})
	require.NoError(t, err)
	defer sink.Close()

	_, err = sink.Write([]byte("buffered"))
	require.NoError(t, err)
	require.NoError(t, sink.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("buffered"), data)
}

func TestFileSource_ReadFromOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.rlog")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0600))

	source, err := OpenFileSource(path, 4)
	require.NoError(t, err)
	defer source.Close()

	out, err := io.ReadAll(source)
	require.NoError(t, err)
	assert.Equal(t, []byte("456789"), out)

	size, err := source.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
}

func TestOpenFileSource_Missing(t *testing.T) {
	_, err := OpenFileSource(filepath.Join(t.TempDir(), "nope.rlog"), 0)
	assert.True(t, os.IsNotExist(err))
}
