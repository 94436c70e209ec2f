package vciph

import "encoding/binary"

// buildStream assembles the embedded stream bytes for a payload:
// marker, 32-bit big-endian payload length, then the payload itself.
func buildStream(payload []byte) []byte {
	out := make([]byte, 0, markerBytes+lengthBits/8+len(payload))
	out = append(out, Marker[:]...)
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(payload)))
	out = append(out, l[:]...)
	return append(out, payload...)
}

// bitReader yields the bits of a byte slice msb-first within each byte.
type bitReader struct {
	data []byte
	pos  int // bit index
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (r *bitReader) remaining() int {
	return len(r.data)*8 - r.pos
}

// next returns the next bit as 0 or 1. Callers must not read past the
// end; remaining guards every call site.
func (r *bitReader) next() uint8 {
	b := r.data[r.pos>>3]
	bit := (b >> (7 - uint(r.pos&7))) & 1
	r.pos++
	return bit
}
