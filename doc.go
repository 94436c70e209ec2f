// Package vciph implements VCIPH, a quantization-index-modulation (QIM)
// steganographic codec that hides an arbitrary byte payload in the
// luminance channel of raw video and recovers it losslessly.
//
// # Embedding Scheme
//
// Each video frame's luma plane is divided into 8x8 blocks. Every full
// block carries exactly one payload bit in a single frequency-domain
// coefficient (row 2, column 1 of the block's DCT by default). A bit is
// written by snapping that coefficient to the nearest point of one of
// two interleaved quantization grids: level 0 uses multiples of the
// quantization step Q, level 1 uses multiples of Q offset by Q/2. A bit
// is read back by computing the nearest grid point under each level and
// choosing the closer one, which tolerates any reconstruction noise
// strictly smaller than Q/4.
//
// # Embedded Stream Layout
//
// The bits written to successive blocks form a single stream:
//   - An 88-bit marker: the literal bytes "VCiph_START"
//   - A 32-bit payload length in bytes, big-endian
//   - The payload bytes
//
// All bytes are expanded most-significant-bit first. Extraction parses
// this stream incrementally with a strict state machine: the marker must
// match exactly, in full, before a single length bit is trusted.
//
// # Basic Usage
//
// To embed a payload into frames and recover it:
//
//	cover := vciph.SyntheticCover(320, 240, 30, 1)
//	sink := &vciph.MemSink{}
//	err := vciph.Embed(vciph.NewMemSource(cover), sink, payload)
//	...
//	got, err := vciph.Extract(vciph.NewMemSource(sink.Frames))
//
// Both calls must use the same quantization step and coefficient; see
// [WithQuantizationStep] and [WithCoefficient].
//
// # Carriers
//
// Any forward-only [FrameSource]/[FrameSink] pair can serve as the
// carrier. The package ships an in-memory pair for tests and a
// YUV4MPEG2 pair ([Y4MSource], [Y4MSink]) for on-disk raw video. The
// sink must store frames losslessly; recompressing the output destroys
// the embedding margin.
//
// # Payload Envelope
//
// [PackPayload] and [UnpackPayload] provide an optional self-describing
// wrapper that compresses the payload with ZIP, Zstandard, LZ4, or
// Brotli before embedding. Unpacking enforces size limits to guard
// against decompression bombs.
package vciph
