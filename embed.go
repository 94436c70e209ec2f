package vciph

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Embed hides payload in the luminance channel of the frames read from
// src and writes every frame, modified or not, to sink in read order.
//
// The embedded stream is Marker + 32-bit length + payload, one bit per
// full 8x8 block, frames in order and blocks row-major within each
// frame. Capacity is checked against the source geometry before a
// single frame is read, so a failed Embed never commits partial output:
// it returns ErrPayloadTooLarge and leaves both src and sink untouched.
//
// Embed modifies frames in place before forwarding them to sink. It
// performs exactly one forward pass over src.
//
// Use Option values to change the quantization step, coefficient, or
// transform; Extract must be called with the same values.
func Embed(src FrameSource, sink FrameSink, payload []byte, opts ...Option) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("%w: payload length %d does not fit the 32-bit length field", ErrPayloadTooLarge, len(payload))
	}
	w, h, frames, err := sourceGeometry(src)
	if err != nil {
		return err
	}
	cur, err := newCursor(w, h, frames)
	if err != nil {
		return err
	}

	bits := newBitReader(buildStream(payload))
	if need := bits.remaining(); need > cur.capacity() {
		return fmt.Errorf("%w: stream is %d bits, carrier holds %d", ErrPayloadTooLarge, need, cur.capacity())
	}

	ci := cfg.coeffIndex()
	var spatial, freq [blockSamples]float64

	pos, havePos := cur.next()
	for n := 0; n < frames; n++ {
		frame, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: source ended at frame %d of %d", ErrInvalidGeometry, n, frames)
			}
			return err
		}
		if frame.Width != w || frame.Height != h {
			return fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d", ErrInvalidGeometry, n, frame.Width, frame.Height, w, h)
		}

		for havePos && pos.Frame == n && bits.remaining() > 0 {
			loadBlock(frame, pos.Row, pos.Col, &spatial)
			cfg.transform.Forward(&spatial, &freq)
			freq[ci] = embedBit(freq[ci], bits.next(), cfg.q)
			cfg.transform.Inverse(&freq, &spatial)
			storeBlock(frame, pos.Row, pos.Col, &spatial)
			pos, havePos = cur.next()
		}

		if err := sink.Write(frame); err != nil {
			return err
		}
	}
	return nil
}
