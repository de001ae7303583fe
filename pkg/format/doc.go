// Package format defines the on-stream framing for RecordIO logs.
//
// A log is a sequence of 32KB blocks. The only exception is that the tail
// of the stream may contain a partial block.
//
// Each block consists of a sequence of physical records:
//
//	block := record* trailer?
//	record :=
//	  checksum: uint32     // masked crc32c of type and data[]; little-endian
//	  length: uint16       // little-endian
//	  type: uint8          // one of FULL, FIRST, MIDDLE, LAST
//	  data: uint8[length]
//
// A record never starts within the last six bytes of a block (since it
// won't fit). Any leftover bytes there form the trailer, which consists
// entirely of zero bytes and is skipped by readers.
//
//	NONE == 0            // reserved; marks a block tail with no usable header
//	FULL == 1
//	FIRST == 2
//	MIDDLE == 3
//	LAST == 4
//
// A FULL record contains the contents of an entire logical record. FIRST,
// MIDDLE and LAST are used for logical records that have been split
// into multiple fragments at block boundaries: FIRST carries the first
// fragment, LAST the final one, and MIDDLE every interior fragment.
//
// # Checksum masking
//
// The checksum field stores a masked CRC32C (Castagnoli). The raw checksum
// of the type byte followed by the payload is rotated right by 15 bits and
// a fixed delta is added before it is written; readers reverse the
// transform before comparing. Masking prevents a run of zero bytes (for
// example an unwritten block trailer) from looking like a record whose
// checksum validates. Both the delta and the rotation are format
// compatibility constants and must match across implementations.
package format
