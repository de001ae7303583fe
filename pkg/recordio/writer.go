package recordio

import (
	"github.com/kvasirdb/recordio/pkg/format"
)

// blockTrailer zero-fills a block tail too short to hold another header.
var blockTrailer = make([]byte, format.HeaderSize-1)

// Writer appends logical records to a Sink, fragmenting them across block
// boundaries as required by the format. A Writer is not safe for
// concurrent use.
type Writer struct {
	sink        Sink
	blockOffset int
	header      format.Header
	closed      bool
}

// NewWriter creates a writer that appends records to sink. The sink's
// current position determines the writer's block alignment, so a writer
// may resume an existing log.
func NewWriter(sink Sink) *Writer {
	return &Writer{
		sink:        sink,
		blockOffset: int(sink.Position() % format.BlockSize),
		header:      format.NewHeader(),
	}
}

// WriteRecord appends data as one logical record and returns the stream
// offset of its first physical record. A zero-length record is valid and
// occupies a single header.
//
// A sink write failure is returned unchanged and leaves the stream in an
// indeterminate state; the writer does not attempt partial-record repair.
func (w *Writer) WriteRecord(data []byte) (int64, error) {
	return w.WriteRecordSequenced(data, "")
}

// WriteRecordSequenced is WriteRecord with an application sequence key.
// The key is handed to the sink with the record's final fragment if the
// sink implements SequencedSink; it is not stored in the log itself.
func (w *Writer) WriteRecordSequenced(data []byte, sequenceKey string) (int64, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}

	begin := true
	end := false
	offset := 0
	start := int64(-1)

	for !end {
		leftover := format.BlockSize - w.blockOffset

		// Not even a header fits here. Zero-fill the tail and start the
		// record at the next block boundary.
		if leftover < format.HeaderSize {
			if leftover > 0 {
				if _, err := w.sink.Write(blockTrailer[:leftover]); err != nil {
					return 0, err
				}
			}
			w.blockOffset = 0
		}
		if start < 0 {
			start = w.sink.Position()
		}

		available := format.BlockSize - w.blockOffset - format.HeaderSize
		fragLen := available
		if left := len(data) - offset; left <= available {
			end = true
			fragLen = left
		}

		recordType := format.TypeMiddle
		switch {
		case begin && end:
			recordType = format.TypeFull
		case begin:
			recordType = format.TypeFirst
		case end:
			recordType = format.TypeLast
		}

		seq := ""
		if end {
			seq = sequenceKey
		}
		if err := w.emitPhysicalRecord(recordType, data[offset:offset+fragLen], seq); err != nil {
			return 0, err
		}

		offset += fragLen
		begin = false
	}

	return start, nil
}

// emitPhysicalRecord writes one header-plus-payload unit and advances the
// block offset. The payload must fit in the current block.
func (w *Writer) emitPhysicalRecord(t format.RecordType, payload []byte, sequenceKey string) error {
	w.header.SetChecksum(format.MaskChecksum(format.Checksum(t, payload)))
	w.header.SetLength(uint16(len(payload)))
	w.header.SetType(t)

	if _, err := w.sink.Write(w.header); err != nil {
		return err
	}
	if seq, ok := w.sink.(SequencedSink); ok && sequenceKey != "" {
		if _, err := seq.WriteSequenced(payload, sequenceKey); err != nil {
			return err
		}
	} else if _, err := w.sink.Write(payload); err != nil {
		return err
	}

	w.blockOffset += format.HeaderSize + len(payload)
	return nil
}

// Close finalizes the log and closes the underlying sink. Any write after
// Close fails with ErrWriterClosed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.sink.Close()
}
