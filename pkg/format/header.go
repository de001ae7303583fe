package format

import "encoding/binary"

// Header is a view over the fixed-length record header:
// [masked checksum: 4][payload length: 2][record type: 1], little-endian.
type Header []byte

// NewHeader allocates a zeroed header.
func NewHeader() Header {
	return make(Header, HeaderSize)
}

func (h Header) Checksum() uint32 {
	return binary.LittleEndian.Uint32(h[0:4])
}

func (h Header) SetChecksum(masked uint32) {
	binary.LittleEndian.PutUint32(h[0:4], masked)
}

func (h Header) Length() uint16 {
	return binary.LittleEndian.Uint16(h[4:6])
}

func (h Header) SetLength(l uint16) {
	binary.LittleEndian.PutUint16(h[4:6], l)
}

func (h Header) Type() RecordType {
	return RecordType(h[6])
}

func (h Header) SetType(t RecordType) {
	h[6] = byte(t)
}
