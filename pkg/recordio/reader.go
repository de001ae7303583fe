package recordio

import (
	"errors"
	"fmt"
	"io"

	"github.com/kvasirdb/recordio/pkg/format"
)

// Reader reassembles logical records from a seekable byte source, in the
// order a Writer produced them. Damage to the stream is reported to the
// configured Reporter and skipped by resynchronizing to the next block
// boundary; the caller observes only valid records and a clean end of
// stream. A Reader is not safe for concurrent use.
type Reader struct {
	src      io.ReadSeeker
	pos      int64
	reporter Reporter
	block    []byte // scratch for one physical record
	record   []byte // accumulation buffer for fragmented records
}

// NewReader creates a reader over src, positioned at config.StartOffset.
func NewReader(src io.ReadSeeker, config ReaderConfig) (*Reader, error) {
	reporter := config.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	pos, err := src.Seek(config.StartOffset, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("seek to start offset: %w", err)
	}

	return &Reader{
		src:      src,
		pos:      pos,
		reporter: reporter,
		block:    make([]byte, format.BlockSize),
		record:   make([]byte, 0, format.BlockSize),
	}, nil
}

// ReadRecord returns the next logical record, or io.EOF once no further
// complete record remains. A tail truncated mid-header or mid-payload is
// treated as end of stream, not an error. The returned slice is owned by
// the caller.
func (r *Reader) ReadRecord() ([]byte, error) {
	r.record = r.record[:0]
	last := format.TypeNone

	for {
		payload, recordType, err := r.readPhysicalRecord()
		if err == nil {
			switch recordType {
			case format.TypeNone:
				// Block tail with no room for a header; move on.
				if err := r.sync(); err != nil {
					return nil, err
				}
				continue

			case format.TypeFull:
				if last == format.TypeNone {
					record := make([]byte, len(payload))
					copy(record, payload)
					return record, nil
				}
				err = corruptf("unexpected %s record inside fragmented record", recordType)

			case format.TypeFirst:
				if last == format.TypeNone {
					r.appendFragment(payload)
					last = recordType
					continue
				}
				err = corruptf("unexpected %s record inside fragmented record", recordType)

			case format.TypeMiddle:
				if last != format.TypeNone {
					r.appendFragment(payload)
					last = recordType
					continue
				}
				err = corruptf("%s record without preceding FIRST", recordType)

			case format.TypeLast:
				if last != format.TypeNone {
					r.appendFragment(payload)
					record := make([]byte, len(r.record))
					copy(record, r.record)
					return record, nil
				}
				err = corruptf("%s record without preceding FIRST", recordType)

			default:
				err = corruptf("unknown record type %d", uint8(recordType))
			}
		}

		if err == io.EOF {
			return nil, io.EOF
		}
		if !errors.Is(err, ErrCorruption) {
			// Underlying stream fault; fatal, propagated unchanged.
			return nil, err
		}

		// Local corruption: drop any partial record, note it, and resume
		// from the next block boundary.
		r.reporter.Corruption(r.pos, err)
		r.record = r.record[:0]
		last = format.TypeNone
		if err := r.sync(); err != nil {
			return nil, err
		}
	}
}

// Position returns the reader's current stream offset. Together with
// SeekTo it supports resumable scans.
func (r *Reader) Position() int64 {
	return r.pos
}

// SeekTo moves the reader to an absolute stream offset, discarding any
// partially assembled record.
func (r *Reader) SeekTo(offset int64) error {
	pos, err := r.src.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek to %d: %w", offset, err)
	}
	r.pos = pos
	r.record = r.record[:0]
	return nil
}

// readPhysicalRecord reads the next header-plus-payload unit from the
// source. It returns io.EOF when the stream cannot supply a complete
// record, and an ErrCorruption-wrapped error when one fails validation.
// The returned payload aliases the reader's scratch buffer and is valid
// only until the next call.
func (r *Reader) readPhysicalRecord() ([]byte, format.RecordType, error) {
	bytesToBlockEnd := format.BlockSize - int(r.pos%format.BlockSize)
	if bytesToBlockEnd < format.HeaderSize {
		// Nothing is read here; the caller skips the zero-filled trailer.
		return nil, format.TypeNone, nil
	}

	header := format.Header(r.block[:format.HeaderSize])
	if ok, err := r.readFull(header); err != nil {
		return nil, format.TypeNone, err
	} else if !ok {
		return nil, format.TypeNone, io.EOF
	}

	storedChecksum := header.Checksum()
	length := int(header.Length())
	recordType := header.Type()

	if format.HeaderSize+length > bytesToBlockEnd {
		return nil, recordType, corruptf("length %d exceeds %d bytes left in block", length, bytesToBlockEnd-format.HeaderSize)
	}

	payload := r.block[:length]
	if ok, err := r.readFull(payload); err != nil {
		return nil, recordType, err
	} else if !ok {
		return nil, recordType, io.EOF
	}

	if computed := format.Checksum(recordType, payload); computed != format.UnmaskChecksum(storedChecksum) {
		return nil, recordType, corruptf("checksum mismatch for %s record of length %d", recordType, length)
	}

	return payload, recordType, nil
}

// readFull reads exactly len(p) bytes. A short read means the stream was
// truncated mid-record and is reported as (false, nil), not an error.
func (r *Reader) readFull(p []byte) (bool, error) {
	n, err := io.ReadFull(r.src, p)
	r.pos += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// sync advances the source to the next block boundary. A reader already on
// a boundary stays put, so corruption detected at the very end of a block
// cannot swallow the following block.
func (r *Reader) sync() error {
	pad := (format.BlockSize - r.pos%format.BlockSize) % format.BlockSize
	if pad == 0 {
		return nil
	}
	pos, err := r.src.Seek(r.pos+pad, io.SeekStart)
	if err != nil {
		return fmt.Errorf("resync to block boundary: %w", err)
	}
	r.pos = pos
	return nil
}

// appendFragment adds a fragment payload to the accumulation buffer,
// doubling the buffer's capacity whenever the append would overflow it.
func (r *Reader) appendFragment(p []byte) {
	if need := len(r.record) + len(p); need > cap(r.record) {
		capacity := cap(r.record)
		for capacity < need {
			capacity *= 2
		}
		grown := make([]byte, len(r.record), capacity)
		copy(grown, r.record)
		r.record = grown
	}
	r.record = append(r.record, p...)
}
