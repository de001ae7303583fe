// Package logstore manages a set of named record logs under one data
// directory, pairing the recordio core with file-backed streams and
// per-append sequence keys.
package logstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/kvasirdb/recordio/pkg/recordio"
	"github.com/kvasirdb/recordio/pkg/stream"
)

const logSuffix = ".rlog"

// Store provides append and scan access to named record logs.
type Store struct {
	config StoreConfig
	logs   map[string]*logHandle
	mutex  sync.Mutex
	isOpen bool
}

type logHandle struct {
	sink   *stream.FileSink
	writer *recordio.Writer
}

// NewStore creates a store instance rooted at config.DataDir.
func NewStore(config StoreConfig) (*Store, error) {
	if config.DataDir == "" {
		return nil, &StoreError{"data directory is required"}
	}
	return &Store{
		config: config,
		logs:   make(map[string]*logHandle),
	}, nil
}

// Open prepares the data directory for use.
func (s *Store) Open() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isOpen {
		return nil
	}
	if err := os.MkdirAll(s.config.DataDir, 0750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	s.isOpen = true
	return nil
}

// Append adds data as one logical record to the named log, creating the
// log on first use. Each append is tagged with a fresh ksuid sequence key.
func (s *Store) Append(name string, data []byte) (*AppendResult, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil, ErrNotOpen
	}
	handle, err := s.handle(name)
	if err != nil {
		return nil, err
	}

	sequenceKey := ksuid.New().String()
	offset, err := handle.writer.WriteRecordSequenced(data, sequenceKey)
	if err != nil {
		return nil, err
	}

	if s.config.FsyncInterval == 0 {
		if err := handle.sink.Sync(); err != nil {
			return nil, err
		}
	}

	return &AppendResult{
		Offset:      offset,
		Length:      len(data),
		SequenceKey: sequenceKey,
	}, nil
}

// Scan walks the named log from fromOffset, calling fn for every logical
// record. Corrupted regions are counted and skipped, not surfaced as
// errors. A nil fn counts records without delivering them. Scan returns
// the stats accumulated up to the point an fn error aborted the walk.
func (s *Store) Scan(name string, fromOffset int64, fn func(offset int64, record []byte) error) (*ScanStats, error) {
	path, err := s.preparePath(name)
	if err != nil {
		return nil, err
	}

	source, err := stream.OpenFileSource(path, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSuchLog
		}
		return nil, err
	}
	defer source.Close()

	stats := &ScanStats{}
	reader, err := recordio.NewReader(source, recordio.ReaderConfig{
		StartOffset: fromOffset,
		Reporter: recordio.ReporterFunc(func(offset int64, err error) {
			stats.Corruptions++
		}),
	})
	if err != nil {
		return nil, err
	}

	for {
		offset := reader.Position()
		record, err := reader.ReadRecord()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		stats.Records++
		stats.Bytes += int64(len(record))
		if fn != nil {
			if err := fn(offset, record); err != nil {
				stats.EndOffset = reader.Position()
				return stats, err
			}
		}
	}

	stats.EndOffset = reader.Position()
	return stats, nil
}

// Stats reports the size and last in-process sequence key of a log.
func (s *Store) Stats(name string) (*LogStats, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil, ErrNotOpen
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	stats := &LogStats{Name: name}
	if handle, ok := s.logs[name]; ok {
		// Flush so the file size below reflects buffered appends.
		if err := handle.sink.Sync(); err != nil {
			return nil, err
		}
		stats.LastSequenceKey = handle.sink.LastSequenceKey()
	}

	info, err := os.Stat(s.logPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSuchLog
		}
		return nil, err
	}
	stats.SizeBytes = info.Size()
	return stats, nil
}

// List returns the names of all logs in the data directory.
func (s *Store) List() ([]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil, ErrNotOpen
	}

	entries, err := os.ReadDir(s.config.DataDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), logSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), logSuffix))
	}
	return names, nil
}

// Sync flushes every open log to disk.
func (s *Store) Sync() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, handle := range s.logs {
		if err := handle.sink.Sync(); err != nil {
			return err
		}
	}
	return nil
}

// Close finalizes all open writers and closes the store.
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var firstErr error
	for name, handle := range s.logs {
		if err := handle.writer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log %q: %w", name, err)
		}
	}
	s.logs = make(map[string]*logHandle)
	s.isOpen = false
	return firstErr
}

// handle returns the open write handle for name, creating it on first use.
// Caller must hold the mutex.
func (s *Store) handle(name string) (*logHandle, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if handle, ok := s.logs[name]; ok {
		return handle, nil
	}

	sink, err := stream.NewFileSink(stream.FileSinkConfig{
		FilePath:      s.logPath(name),
		FsyncInterval: s.config.FsyncInterval,
		BufferSize:    s.config.BufferSize,
	})
	if err != nil {
		return nil, err
	}

	handle := &logHandle{
		sink:   sink,
		writer: recordio.NewWriter(sink),
	}
	s.logs[name] = handle
	return handle, nil
}

// preparePath validates name and flushes any open writer for it so a scan
// sees every durable byte.
func (s *Store) preparePath(name string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return "", ErrNotOpen
	}
	if err := validateName(name); err != nil {
		return "", err
	}
	if handle, ok := s.logs[name]; ok {
		if err := handle.sink.Sync(); err != nil {
			return "", err
		}
	}
	return s.logPath(name), nil
}

func (s *Store) logPath(name string) string {
	return filepath.Join(s.config.DataDir, name+logSuffix)
}

// validateName rejects names that would escape the data directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidLogName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidLogName
	}
	return nil
}
