package vciph

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func writeY4M(t *testing.T, h Y4MHeader, frames []*Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	sink, err := NewY4MSink(&buf, h)
	if err != nil {
		t.Fatalf("NewY4MSink: %v", err)
	}
	for _, f := range frames {
		if err := sink.Write(f); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	return buf.Bytes()
}

func TestY4M_RoundTrip_Mono(t *testing.T) {
	h := Y4MHeader{Width: 64, Height: 32, FrameRate: "25:1", Colorspace: "mono"}
	frames := SyntheticCover(64, 32, 3, 6)
	data := writeY4M(t, h, frames)

	src, err := NewY4MSource(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewY4MSource: %v", err)
	}
	w, ht, n := src.Geometry()
	if w != 64 || ht != 32 || n != 3 {
		t.Fatalf("geometry = %d,%d,%d", w, ht, n)
	}
	if got := src.Header(); got.Colorspace != "mono" || got.FrameRate != "25:1" {
		t.Fatalf("header = %+v", got)
	}
	for i := 0; i < 3; i++ {
		f, err := src.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !bytes.Equal(f.Y, frames[i].Y) {
			t.Fatalf("frame %d luma mismatch", i)
		}
	}
	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("err after last frame = %v, want io.EOF", err)
	}
}

func TestY4M_RoundTrip_420ChromaPassthrough(t *testing.T) {
	h := Y4MHeader{Width: 16, Height: 16, Colorspace: "420jpeg"}
	frames := SyntheticCover(16, 16, 2, 7)
	for i, f := range frames {
		f.Chroma = bytes.Repeat([]byte{byte(0x70 + i)}, 2*8*8)
	}
	data := writeY4M(t, h, frames)

	src, err := NewY4MSource(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewY4MSource: %v", err)
	}
	for i := 0; i < 2; i++ {
		f, err := src.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !bytes.Equal(f.Chroma, frames[i].Chroma) {
			t.Fatalf("frame %d chroma mismatch", i)
		}
	}
}

func TestY4M_HeaderDefaultsTo420(t *testing.T) {
	data := "YUV4MPEG2 W16 H8\nFRAME\n" + strings.Repeat("\x00", 16*8+2*8*4)
	src, err := NewY4MSource(strings.NewReader(data))
	if err != nil {
		t.Fatalf("NewY4MSource: %v", err)
	}
	if src.Header().Colorspace != "420jpeg" {
		t.Fatalf("colorspace = %q, want 420jpeg default", src.Header().Colorspace)
	}
	if _, _, n := src.Geometry(); n != 1 {
		t.Fatalf("frames = %d, want 1", n)
	}
}

func TestY4M_BadHeaders(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
	}{
		{"wrong_magic", "JUV4MPEG2 W16 H8\n"},
		{"missing_width", "YUV4MPEG2 H8\n"},
		{"missing_height", "YUV4MPEG2 W16\n"},
		{"bad_width", "YUV4MPEG2 Wx H8\n"},
		{"negative_height", "YUV4MPEG2 W16 H-8\n"},
		{"unknown_param", "YUV4MPEG2 W16 H8 Q9\n"},
		{"bad_colorspace", "YUV4MPEG2 W16 H8 C999\n"},
		{"truncated_frames", "YUV4MPEG2 W16 H8 Cmono\nFRAME\n\x00\x00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewY4MSource(strings.NewReader(tc.data))
			if !errors.Is(err, ErrInvalidHeader) {
				t.Fatalf("err = %v, want ErrInvalidHeader", err)
			}
		})
	}
}

func TestY4M_ExtensionParamIgnored(t *testing.T) {
	data := "YUV4MPEG2 W16 H8 Cmono XYSCSS=1\nFRAME\n" + strings.Repeat("\x00", 16*8)
	if _, err := NewY4MSource(strings.NewReader(data)); err != nil {
		t.Fatalf("NewY4MSource: %v", err)
	}
}

func TestY4M_SinkRejectsMismatchedFrames(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewY4MSink(&buf, Y4MHeader{Width: 16, Height: 16, Colorspace: "mono"})
	if err != nil {
		t.Fatalf("NewY4MSink: %v", err)
	}
	bad := &Frame{Width: 8, Height: 8, Y: make([]uint8, 64)}
	if err := sink.Write(bad); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("err = %v, want ErrInvalidGeometry", err)
	}
	chroma := &Frame{Width: 16, Height: 16, Y: make([]uint8, 256), Chroma: []byte{1, 2, 3}}
	if err := sink.Write(chroma); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("err = %v, want ErrInvalidGeometry", err)
	}
}

func TestY4M_EmbedExtractThroughFile(t *testing.T) {
	payload := []byte("hidden in a y4m stream")
	cover := writeY4M(t,
		Y4MHeader{Width: 96, Height: 64, FrameRate: "30:1", Colorspace: "mono"},
		SyntheticCover(96, 64, 4, 30))

	src, err := NewY4MSource(bytes.NewReader(cover))
	if err != nil {
		t.Fatalf("NewY4MSource: %v", err)
	}
	var stego bytes.Buffer
	sink, err := NewY4MSink(&stego, src.Header())
	if err != nil {
		t.Fatalf("NewY4MSink: %v", err)
	}
	if err := Embed(src, sink, payload, WithQuantizationStep(16)); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	back, err := NewY4MSource(bytes.NewReader(stego.Bytes()))
	if err != nil {
		t.Fatalf("reopen stego: %v", err)
	}
	got, err := Extract(back, WithQuantizationStep(16))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = %q, want %q", got, payload)
	}
}
