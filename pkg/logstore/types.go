package logstore

import "time"

// StoreConfig holds configuration for the log store.
type StoreConfig struct {
	DataDir       string        // Directory for log files
	FsyncInterval time.Duration // Fsync interval for durability (0 = every append)
	BufferSize    int           // Write buffer size per log
}

// AppendResult describes one durable append.
type AppendResult struct {
	Offset      int64  // Stream offset of the record's first physical record
	Length      int    // Logical record length in bytes
	SequenceKey string // Generated sequence key for the append
}

// ScanStats summarizes one scan over a log.
type ScanStats struct {
	Records     int   // Logical records delivered
	Bytes       int64 // Total payload bytes delivered
	Corruptions int   // Corruption events skipped during the scan
	EndOffset   int64 // Stream offset the scan stopped at
}

// LogStats describes one named log.
type LogStats struct {
	Name            string `json:"name"`
	SizeBytes       int64  `json:"size_bytes"`
	LastSequenceKey string `json:"last_sequence_key,omitempty"`
}

// Errors
var (
	ErrNotOpen        = &StoreError{"store is not open"}
	ErrNoSuchLog      = &StoreError{"no such log"}
	ErrInvalidLogName = &StoreError{"invalid log name"}
)

// StoreError represents a log store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
