// Package stream provides the byte sink and source implementations the
// record log core runs over: append-only files and an in-memory device.
package stream

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileSinkConfig holds configuration for a file sink.
type FileSinkConfig struct {
	FilePath      string        // Path to the log file
	FsyncInterval time.Duration // How often to fsync (0 = caller drives Sync)
	BufferSize    int           // Write buffer size
}

// FileSink is an append-only file destination for a record log. It
// implements recordio.Sink and recordio.SequencedSink.
type FileSink struct {
	file        *os.File
	writer      *bufio.Writer
	fsyncTimer  *time.Timer
	config      FileSinkConfig
	mutex       sync.Mutex
	offset      int64
	sequenceKey string
}

// NewFileSink opens (or creates) the file at config.FilePath for
// appending. The sink's position resumes at the current file size.
func NewFileSink(config FileSinkConfig) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		file.Close()
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	bufferSize := config.BufferSize
	if bufferSize <= 0 {
		bufferSize = 64 * 1024
	}

	sink := &FileSink{
		file:   file,
		writer: bufio.NewWriterSize(file, bufferSize),
		config: config,
		offset: stat.Size(),
	}

	if config.FsyncInterval > 0 {
		sink.fsyncTimer = time.AfterFunc(config.FsyncInterval, func() {
			sink.mutex.Lock()
			defer sink.mutex.Unlock()
			_ = sink.sync()
			sink.fsyncTimer.Reset(sink.config.FsyncInterval)
		})
	}

	return sink, nil
}

// Write appends p to the log file.
func (s *FileSink) Write(p []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n, err := s.writer.Write(p)
	s.offset += int64(n)
	return n, err
}

// WriteSequenced appends p and remembers sequenceKey as the last key made
// durable through this sink.
func (s *FileSink) WriteSequenced(p []byte, sequenceKey string) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n, err := s.writer.Write(p)
	s.offset += int64(n)
	if err == nil {
		s.sequenceKey = sequenceKey
	}
	return n, err
}

// LastSequenceKey returns the sequence key carried by the most recent
// WriteSequenced, or "" if none was recorded.
func (s *FileSink) LastSequenceKey() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.sequenceKey
}

// Position returns the number of bytes appended to the file so far.
func (s *FileSink) Position() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.offset
}

// Sync flushes buffered writes and fsyncs the file.
func (s *FileSink) Sync() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.sync()
}

func (s *FileSink) sync() error {
	if err := s.writer.Flush(); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close flushes, fsyncs and closes the file.
func (s *FileSink) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.fsyncTimer != nil {
		s.fsyncTimer.Stop()
	}
	if err := s.sync(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// Path returns the file path.
func (s *FileSink) Path() string {
	return s.config.FilePath
}

// FileSource is a read-only, seekable view of a record log file.
type FileSource struct {
	file *os.File
}

// OpenFileSource opens path for reading, positioned at startOffset.
func OpenFileSource(path string, startOffset int64) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if startOffset > 0 {
		if _, err := file.Seek(startOffset, io.SeekStart); err != nil {
			file.Close()
			return nil, err
		}
	}
	return &FileSource{file: file}, nil
}

func (s *FileSource) Read(p []byte) (int, error) {
	return s.file.Read(p)
}

func (s *FileSource) Seek(offset int64, whence int) (int64, error) {
	return s.file.Seek(offset, whence)
}

// Size returns the current size of the underlying file.
func (s *FileSource) Size() (int64, error) {
	stat, err := s.file.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}
