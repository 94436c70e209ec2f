package vciph

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Y4MHeader holds the stream parameters of a YUV4MPEG2 file. FrameRate,
// Interlace, and Aspect are kept as raw header tokens so a sink can echo
// a source's parameters without interpreting them.
type Y4MHeader struct {
	Width      int
	Height     int
	FrameRate  string // e.g. "25:1"
	Interlace  string // e.g. "p", or empty
	Aspect     string // e.g. "1:1", or empty
	Colorspace string // "420jpeg", "420mpeg2", "420paldv", "422", "444", "mono"
}

// chromaPlaneSize returns the byte count of the chroma planes per frame.
func (h Y4MHeader) chromaPlaneSize() (int, error) {
	switch h.Colorspace {
	case "420jpeg", "420mpeg2", "420paldv":
		return 2 * (h.Width / 2) * (h.Height / 2), nil
	case "422":
		return 2 * (h.Width / 2) * h.Height, nil
	case "444":
		return 2 * h.Width * h.Height, nil
	case "mono":
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unsupported colorspace %q", ErrInvalidHeader, h.Colorspace)
	}
}

func (h Y4MHeader) marshal() string {
	var b strings.Builder
	fmt.Fprintf(&b, "YUV4MPEG2 W%d H%d", h.Width, h.Height)
	if h.FrameRate != "" {
		fmt.Fprintf(&b, " F%s", h.FrameRate)
	}
	if h.Interlace != "" {
		fmt.Fprintf(&b, " I%s", h.Interlace)
	}
	if h.Aspect != "" {
		fmt.Fprintf(&b, " A%s", h.Aspect)
	}
	fmt.Fprintf(&b, " C%s\n", h.Colorspace)
	return b.String()
}

const (
	y4mMagic      = "YUV4MPEG2"
	y4mFrameMagic = "FRAME"
	maxY4MLine    = 256
)

// Y4MSource reads frames from a YUV4MPEG2 stream. The frame count is
// derived from the stream size once at open; after that the stream is
// consumed strictly forward, one frame per Next call. Frames must use
// bare FRAME delimiters (no per-frame parameters).
type Y4MSource struct {
	r          io.Reader
	header     Y4MHeader
	chromaSize int
	frames     int
	read       int
}

// NewY4MSource parses the stream header of r and positions it at the
// first frame. The seeker is used only to size the stream before any
// frame is read; no backward seek happens afterwards.
func NewY4MSource(r io.ReadSeeker) (*Y4MSource, error) {
	line, err := readY4MLine(r)
	if err != nil {
		return nil, err
	}
	h, err := parseY4MHeader(line)
	if err != nil {
		return nil, err
	}
	chromaSize, err := h.chromaPlaneSize()
	if err != nil {
		return nil, err
	}

	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}

	unit := int64(len(y4mFrameMagic) + 1 + h.Width*h.Height + chromaSize)
	data := end - pos
	if data%unit != 0 {
		return nil, fmt.Errorf("%w: %d bytes of frame data is not a whole number of %d-byte frames", ErrInvalidHeader, data, unit)
	}

	return &Y4MSource{
		r:          r,
		header:     h,
		chromaSize: chromaSize,
		frames:     int(data / unit),
	}, nil
}

// Header returns the parsed stream parameters, suitable for passing to
// NewY4MSink when writing a matching output stream.
func (s *Y4MSource) Header() Y4MHeader { return s.header }

func (s *Y4MSource) Geometry() (int, int, int) {
	return s.header.Width, s.header.Height, s.frames
}

func (s *Y4MSource) Next() (*Frame, error) {
	if s.read >= s.frames {
		return nil, io.EOF
	}
	line, err := readY4MLine(s.r)
	if err != nil {
		return nil, err
	}
	if line != y4mFrameMagic {
		return nil, fmt.Errorf("%w: expected FRAME delimiter, got %q", ErrInvalidHeader, line)
	}
	f := &Frame{
		Width:  s.header.Width,
		Height: s.header.Height,
		Y:      make([]uint8, s.header.Width*s.header.Height),
	}
	if _, err := io.ReadFull(s.r, f.Y); err != nil {
		return nil, err
	}
	if s.chromaSize > 0 {
		f.Chroma = make([]byte, s.chromaSize)
		if _, err := io.ReadFull(s.r, f.Chroma); err != nil {
			return nil, err
		}
	}
	s.read++
	return f, nil
}

// Y4MSink writes frames as a YUV4MPEG2 stream.
type Y4MSink struct {
	w           io.Writer
	header      Y4MHeader
	chromaSize  int
	wroteHeader bool
}

// NewY4MSink prepares a sink writing a stream with the given parameters.
// The stream header is emitted before the first frame.
func NewY4MSink(w io.Writer, h Y4MHeader) (*Y4MSink, error) {
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, h.Width, h.Height)
	}
	chromaSize, err := h.chromaPlaneSize()
	if err != nil {
		return nil, err
	}
	return &Y4MSink{w: w, header: h, chromaSize: chromaSize}, nil
}

func (s *Y4MSink) Write(f *Frame) error {
	if f.Width != s.header.Width || f.Height != s.header.Height {
		return fmt.Errorf("%w: frame is %dx%d, stream is %dx%d", ErrInvalidGeometry, f.Width, f.Height, s.header.Width, s.header.Height)
	}
	if len(f.Chroma) != s.chromaSize {
		return fmt.Errorf("%w: frame has %d chroma bytes, colorspace %s needs %d", ErrInvalidGeometry, len(f.Chroma), s.header.Colorspace, s.chromaSize)
	}
	if !s.wroteHeader {
		if _, err := io.WriteString(s.w, s.header.marshal()); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	if _, err := io.WriteString(s.w, y4mFrameMagic+"\n"); err != nil {
		return err
	}
	if _, err := s.w.Write(f.Y); err != nil {
		return err
	}
	if s.chromaSize > 0 {
		if _, err := s.w.Write(f.Chroma); err != nil {
			return err
		}
	}
	return nil
}

// readY4MLine reads up to and excluding the next newline, one byte at a
// time so the underlying reader is never over-read.
func readY4MLine(r io.Reader) (string, error) {
	var b strings.Builder
	var one [1]byte
	for b.Len() < maxY4MLine {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			return "", err
		}
		if one[0] == '\n' {
			return b.String(), nil
		}
		b.WriteByte(one[0])
	}
	return "", fmt.Errorf("%w: header line exceeds %d bytes", ErrInvalidHeader, maxY4MLine)
}

func parseY4MHeader(line string) (Y4MHeader, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != y4mMagic {
		return Y4MHeader{}, fmt.Errorf("%w: missing %s signature", ErrInvalidHeader, y4mMagic)
	}
	h := Y4MHeader{Colorspace: "420jpeg"} // default per the y4m convention
	for _, f := range fields[1:] {
		if len(f) < 2 {
			return Y4MHeader{}, fmt.Errorf("%w: bad parameter %q", ErrInvalidHeader, f)
		}
		val := f[1:]
		switch f[0] {
		case 'W':
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return Y4MHeader{}, fmt.Errorf("%w: bad width %q", ErrInvalidHeader, val)
			}
			h.Width = n
		case 'H':
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return Y4MHeader{}, fmt.Errorf("%w: bad height %q", ErrInvalidHeader, val)
			}
			h.Height = n
		case 'F':
			h.FrameRate = val
		case 'I':
			h.Interlace = val
		case 'A':
			h.Aspect = val
		case 'C':
			h.Colorspace = val
		case 'X':
			// application extension, ignored
		default:
			return Y4MHeader{}, fmt.Errorf("%w: unknown parameter %q", ErrInvalidHeader, f)
		}
	}
	if h.Width == 0 || h.Height == 0 {
		return Y4MHeader{}, fmt.Errorf("%w: missing W or H", ErrInvalidHeader)
	}
	return h, nil
}
