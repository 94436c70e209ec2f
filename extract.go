package vciph

import (
	"errors"
	"fmt"
	"io"
)

// Extract recovers a payload embedded with Embed from the frames read
// from src. It re-derives the block traversal from the source geometry
// alone, decodes one bit per block, and feeds an incremental parser in
// lockstep; the pass stops as soon as the stream is complete, and src is
// never reopened or rewound.
//
// Extract fails with ErrMarkerNotFound if no exact marker occurs in the
// carrier, ErrCorruptLength if the decoded length cannot fit in the bits
// that remain (or exceeds Limits.MaxPayloadLen), and ErrIncompleteStream
// if the carrier ends after a validated marker but before the stream is
// complete. It never substitutes a partial or zero-filled payload for a
// failure.
func Extract(src FrameSource, opts ...Option) ([]byte, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	w, h, frames, err := sourceGeometry(src)
	if err != nil {
		return nil, err
	}
	cur, err := newCursor(w, h, frames)
	if err != nil {
		return nil, err
	}

	ci := cfg.coeffIndex()
	var spatial, freq [blockSamples]float64
	var p streamParser
	lengthChecked := false

	pos, havePos := cur.next()
	for n := 0; n < frames && havePos && !p.done(); n++ {
		frame, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if frame.Width != w || frame.Height != h {
			return nil, fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d", ErrInvalidGeometry, n, frame.Width, frame.Height, w, h)
		}

		for havePos && pos.Frame == n && !p.done() {
			loadBlock(frame, pos.Row, pos.Col, &spatial)
			cfg.transform.Forward(&spatial, &freq)
			p.feed(decodeBit(freq[ci], cfg.q))

			if !lengthChecked && p.lengthKnown() {
				lengthChecked = true
				if uint64(p.length) > cfg.limits.MaxPayloadLen {
					return nil, fmt.Errorf("%w: length %d exceeds limit %d", ErrCorruptLength, p.length, cfg.limits.MaxPayloadLen)
				}
				if need := p.needBits(); need > int64(cur.remaining()) {
					return nil, fmt.Errorf("%w: length %d needs %d more bits, %d remain in carrier", ErrCorruptLength, p.length, need, cur.remaining())
				}
			}

			pos, havePos = cur.next()
		}
	}

	switch p.state {
	case stateDone:
		return p.payload, nil
	case stateSeekMarker:
		return nil, fmt.Errorf("%w: carrier exhausted", ErrMarkerNotFound)
	case stateReadPayload:
		return nil, fmt.Errorf("%w: carrier exhausted with %d payload bits outstanding", ErrIncompleteStream, p.needBits())
	default:
		return nil, fmt.Errorf("%w: carrier exhausted inside the length field", ErrIncompleteStream)
	}
}
