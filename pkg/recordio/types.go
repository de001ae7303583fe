// Package recordio writes and reads block-aligned, checksummed record
// logs. A Writer turns arbitrary-length logical records into the physical
// records defined by pkg/format; a Reader reverses the process, skipping
// damaged regions instead of failing the whole stream.
package recordio

import (
	"fmt"
	"io"
)

// Sink is the append-only byte destination a Writer emits physical records
// to. Position reports the number of bytes written since the start of the
// stream; the writer uses it to derive its block alignment.
type Sink interface {
	io.Writer
	Position() int64
	Close() error
}

// SequencedSink is implemented by sinks that track application sequence
// keys. The writer hands the caller's sequence key to the sink together
// with the final fragment of a record. Sequence keys are bookkeeping for
// the layer above the log; they never appear on the wire.
type SequencedSink interface {
	Sink
	WriteSequenced(p []byte, sequenceKey string) (int, error)
}

// ReaderConfig holds configuration for a Reader.
type ReaderConfig struct {
	StartOffset int64    // Offset to start reading from
	Reporter    Reporter // Receives corruption events; nil for none
}

// Errors
var (
	ErrWriterClosed = &LogError{"writer is closed"}
	ErrCorruption   = &LogError{"corrupt record"}
)

// LogError represents a record log error.
type LogError struct {
	Message string
}

func (e *LogError) Error() string {
	return e.Message
}

// corruptf builds a local-corruption error. The reader recovers from these
// by resynchronizing to the next block boundary; they reach the caller only
// through the Reporter, never as a ReadRecord error.
func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrCorruption}, args...)...)
}
