package stream

import "io"

// Buffer is an in-memory byte device. It grows on writes past its end and
// behaves like a file on reads and seeks: seeking beyond the end is legal
// and reads there return io.EOF. It serves as both sink and source for
// ephemeral logs and tests.
type Buffer struct {
	data   []byte
	offset int64
}

// NewBuffer returns an empty buffer positioned at offset 0.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Seek sets the position for the next Read or Write.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += b.offset
	case io.SeekEnd:
		offset += int64(len(b.data))
	default:
		return 0, &LogStreamError{"invalid seek whence"}
	}
	if offset < 0 {
		return 0, &LogStreamError{"negative seek offset"}
	}
	b.offset = offset
	return offset, nil
}

// Read reads from the current position.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.offset >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.offset:])
	b.offset += int64(n)
	return n, nil
}

// Write writes at the current position, growing the buffer as needed.
func (b *Buffer) Write(p []byte) (int, error) {
	if end := b.offset + int64(len(p)); end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	n := copy(b.data[b.offset:], p)
	b.offset += int64(n)
	return n, nil
}

// Position returns the current position.
func (b *Buffer) Position() int64 {
	return b.offset
}

// Close is a no-op so a Buffer satisfies recordio.Sink.
func (b *Buffer) Close() error {
	return nil
}

// Bytes returns the buffer's contents. The slice is shared with the
// buffer; corrupting it in place is how tests simulate damaged streams.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes stored.
func (b *Buffer) Len() int {
	return len(b.data)
}

// LogStreamError represents a stream device error.
type LogStreamError struct {
	Message string
}

func (e *LogStreamError) Error() string {
	return e.Message
}
