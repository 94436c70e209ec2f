package vciph

import "fmt"

// blockPos addresses one eligible block: the frame index and the pixel
// coordinates of the block's top-left corner.
type blockPos struct {
	Frame int
	Row   int
	Col   int
}

// cursor enumerates eligible blocks in a fixed order: frames in source
// order, blocks row-major within each frame. It is a pure function of
// the frame geometry, so the embed and extract passes re-derive the
// identical sequence independently; it never touches the video source.
// Frames that are not multiples of the block size contribute only their
// full blocks.
type cursor struct {
	cols   int // full blocks per row
	rows   int // full block rows per frame
	frames int
	i      int // next block, counted across all frames
}

func newCursor(width, height, frames int) (*cursor, error) {
	if width < BlockSize || height < BlockSize || frames <= 0 {
		return nil, fmt.Errorf("%w: %dx%d, %d frames", ErrInvalidGeometry, width, height, frames)
	}
	return &cursor{
		cols:   width / BlockSize,
		rows:   height / BlockSize,
		frames: frames,
	}, nil
}

// capacity is the total number of eligible blocks, one carrier bit each.
func (c *cursor) capacity() int {
	return c.cols * c.rows * c.frames
}

// remaining is the number of blocks not yet enumerated.
func (c *cursor) remaining() int {
	return c.capacity() - c.i
}

// next returns the next block position, or ok=false when exhausted.
func (c *cursor) next() (pos blockPos, ok bool) {
	if c.i >= c.capacity() {
		return blockPos{}, false
	}
	perFrame := c.cols * c.rows
	n := c.i
	c.i++
	pos.Frame = n / perFrame
	b := n % perFrame
	pos.Row = (b / c.cols) * BlockSize
	pos.Col = (b % c.cols) * BlockSize
	return pos, true
}

// Capacity returns the number of payload bytes that fit in a carrier of
// the given geometry after stream overhead.
func Capacity(width, height, frames int) int {
	c, err := newCursor(width, height, frames)
	if err != nil {
		return 0
	}
	bytes := (c.capacity() - headerBits) / 8
	if bytes < 0 {
		return 0
	}
	return bytes
}
