package vciph

// Limits bounds allocations driven by data decoded from a carrier.
type Limits struct {
	// MaxPayloadLen caps the payload length accepted from a decoded
	// length field, independent of carrier capacity.
	MaxPayloadLen uint64
	// MaxUnpackedLen caps the uncompressed size accepted when unpacking
	// a compressed payload envelope.
	MaxUnpackedLen uint64
}

func defaultLimits() Limits {
	return Limits{
		MaxPayloadLen:  1 << 30, // 1 GiB
		MaxUnpackedLen: 1 << 30,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxPayloadLen == 0 {
		l.MaxPayloadLen = d.MaxPayloadLen
	}
	if l.MaxUnpackedLen == 0 {
		l.MaxUnpackedLen = d.MaxUnpackedLen
	}
	return l
}
