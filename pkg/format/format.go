package format

import (
	"fmt"
	"hash/crc32"
)

const (
	// BlockSize is the alignment unit of the log. Physical records never
	// straddle a block boundary.
	BlockSize = 32 * 1024

	// HeaderSize is the fixed length of a physical record header:
	// checksum (4 bytes), length (2 bytes), record type (1 byte).
	HeaderSize = 4 + 2 + 1
)

// RecordType tags a physical record with its role in the enclosing
// logical record.
type RecordType uint8

const (
	// TypeNone marks a block tail too short to hold a header. It is never
	// written as a record; readers treat it as "skip to the next block".
	TypeNone RecordType = iota
	// TypeFull is a logical record carried whole in one physical record.
	TypeFull
	// TypeFirst is the first fragment of a split logical record.
	TypeFirst
	// TypeMiddle is an interior fragment of a split logical record.
	TypeMiddle
	// TypeLast is the final fragment of a split logical record.
	TypeLast
)

// Valid reports whether t is a known record type.
func (t RecordType) Valid() bool {
	return t <= TypeLast
}

func (t RecordType) String() string {
	switch t {
	case TypeNone:
		return "NONE"
	case TypeFull:
		return "FULL"
	case TypeFirst:
		return "FIRST"
	case TypeMiddle:
		return "MIDDLE"
	case TypeLast:
		return "LAST"
	default:
		return fmt.Sprintf("RecordType(%d)", uint8(t))
	}
}

// checksumDelta is the fixed masking constant of the format. It is shared
// verbatim by every interoperable implementation and must never change.
const checksumDelta uint32 = 0xa282ead8

var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// Checksum computes the CRC32C of the record type byte followed by the
// payload, the value covered by a physical record's checksum field.
func Checksum(t RecordType, payload []byte) uint32 {
	crc := crc32.Update(0, castagnoliTable, []byte{byte(t)})
	return crc32.Update(crc, castagnoliTable, payload)
}

// MaskChecksum transforms a raw checksum into its stored on-wire form.
func MaskChecksum(crc uint32) uint32 {
	return ((crc >> 15) | (crc << 17)) + checksumDelta
}

// UnmaskChecksum reverses MaskChecksum.
func UnmaskChecksum(masked uint32) uint32 {
	rot := masked - checksumDelta
	return (rot >> 17) | (rot << 15)
}
