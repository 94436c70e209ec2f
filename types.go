package vciph

// Marker is the 11-byte signature opening every embedded stream.
var Marker = [11]byte{'V', 'C', 'i', 'p', 'h', '_', 'S', 'T', 'A', 'R', 'T'}

const (
	markerBytes = len(Marker)
	markerBits  = markerBytes * 8

	// lengthBits is the width of the payload length field (bytes, big-endian).
	lengthBits = 32

	// BlockSize is the side of the square sample blocks carrying one bit each.
	BlockSize = 8

	blockSamples = BlockSize * BlockSize
)

// Defaults for the embedding parameters. Both passes must agree on them.
const (
	DefaultQuantizationStep = 4.0
	DefaultCoefficientRow   = 2
	DefaultCoefficientCol   = 1
)

// headerBits is the stream overhead preceding the payload.
const headerBits = markerBits + lengthBits

// StreamBits returns the total number of carrier bits an embedded stream
// occupies for a payload of payloadLen bytes.
func StreamBits(payloadLen int) int {
	return headerBits + payloadLen*8
}

// Compression identifies the algorithm used by the payload envelope.
type Compression uint8

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	default:
		return "unknown"
	}
}
