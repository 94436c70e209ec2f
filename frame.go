package vciph

import (
	"fmt"
	"io"
	"math/rand"
)

// Frame is one video frame. Y holds the luma plane row-major
// (Width*Height samples). Chroma carries any subsampled chroma planes as
// opaque bytes; the codec never inspects or modifies them.
type Frame struct {
	Width  int
	Height int
	Y      []uint8
	Chroma []byte
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{Width: f.Width, Height: f.Height}
	c.Y = append([]uint8(nil), f.Y...)
	c.Chroma = append([]byte(nil), f.Chroma...)
	return c
}

// FrameSource is a forward-only, finite sequence of video frames.
// Geometry must be known before the first frame is read so that capacity
// can be checked up front. Next returns io.EOF after the last frame.
// Implementations need not support rewinding; both embedding and
// extraction consume a source in exactly one forward pass.
type FrameSource interface {
	Geometry() (width, height, frames int)
	Next() (*Frame, error)
}

// FrameSink accepts frames in read order and must store them losslessly.
type FrameSink interface {
	Write(*Frame) error
}

// MemSource is an in-memory FrameSource over a fixed frame slice.
type MemSource struct {
	frames []*Frame
	pos    int
}

// NewMemSource wraps frames in a forward-only source. All frames must
// share the geometry of the first.
func NewMemSource(frames []*Frame) *MemSource {
	return &MemSource{frames: frames}
}

func (s *MemSource) Geometry() (int, int, int) {
	if len(s.frames) == 0 {
		return 0, 0, 0
	}
	return s.frames[0].Width, s.frames[0].Height, len(s.frames)
}

func (s *MemSource) Next() (*Frame, error) {
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

// Read reports how many frames have been consumed so far.
func (s *MemSource) Read() int { return s.pos }

// MemSink is an in-memory FrameSink collecting written frames.
type MemSink struct {
	Frames []*Frame
}

func (s *MemSink) Write(f *Frame) error {
	s.Frames = append(s.Frames, f)
	return nil
}

// SyntheticCover generates a deterministic cover video for tests and
// demos: a slowly drifting gradient with mild per-pixel noise, kept in
// the middle of the sample range so embedding never saturates at 0 or
// 255. The same seed always yields the same frames.
func SyntheticCover(width, height, frames int, seed int64) []*Frame {
	rng := rand.New(rand.NewSource(seed))
	out := make([]*Frame, 0, frames)
	for n := 0; n < frames; n++ {
		f := &Frame{Width: width, Height: height, Y: make([]uint8, width*height)}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				v := 96 + (x+y+3*n)%64 + rng.Intn(17)
				f.Y[y*width+x] = uint8(v)
			}
		}
		out = append(out, f)
	}
	return out
}

func sourceGeometry(src FrameSource) (w, h, frames int, err error) {
	w, h, frames = src.Geometry()
	if w < BlockSize || h < BlockSize || frames <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: %dx%d, %d frames", ErrInvalidGeometry, w, h, frames)
	}
	return w, h, frames, nil
}
