package vciph

import (
	"errors"
	"testing"
)

func collectCursor(t *testing.T, w, h, frames int) []blockPos {
	t.Helper()
	c, err := newCursor(w, h, frames)
	if err != nil {
		t.Fatalf("newCursor: %v", err)
	}
	var out []blockPos
	for {
		pos, ok := c.next()
		if !ok {
			break
		}
		out = append(out, pos)
	}
	return out
}

func TestCursor_Deterministic(t *testing.T) {
	a := collectCursor(t, 48, 32, 3)
	b := collectCursor(t, 48, 32, 3)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCursor_Order(t *testing.T) {
	// 16x16, 2 frames: 4 blocks per frame, row-major, frames in order.
	got := collectCursor(t, 16, 16, 2)
	want := []blockPos{
		{0, 0, 0}, {0, 0, 8}, {0, 8, 0}, {0, 8, 8},
		{1, 0, 0}, {1, 0, 8}, {1, 8, 0}, {1, 8, 8},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCursor_PartialBlocksExcluded(t *testing.T) {
	// 20x17 has 2x2 full blocks; the 4-pixel and 1-pixel margins carry nothing.
	c, err := newCursor(20, 17, 5)
	if err != nil {
		t.Fatalf("newCursor: %v", err)
	}
	if got, want := c.capacity(), 2*2*5; got != want {
		t.Fatalf("capacity = %d, want %d", got, want)
	}
	for {
		pos, ok := c.next()
		if !ok {
			break
		}
		if pos.Row+BlockSize > 17 || pos.Col+BlockSize > 20 {
			t.Fatalf("position %+v overruns the frame", pos)
		}
	}
}

func TestCursor_Remaining(t *testing.T) {
	c, err := newCursor(32, 32, 1)
	if err != nil {
		t.Fatalf("newCursor: %v", err)
	}
	if c.remaining() != 16 {
		t.Fatalf("remaining = %d, want 16", c.remaining())
	}
	c.next()
	c.next()
	if c.remaining() != 14 {
		t.Fatalf("remaining = %d after 2, want 14", c.remaining())
	}
}

func TestCursor_InvalidGeometry(t *testing.T) {
	for _, tc := range []struct{ w, h, frames int }{
		{0, 32, 1},
		{32, 0, 1},
		{7, 32, 1},
		{32, 7, 1},
		{32, 32, 0},
		{32, 32, -1},
	} {
		if _, err := newCursor(tc.w, tc.h, tc.frames); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("newCursor(%d,%d,%d): err = %v, want ErrInvalidGeometry", tc.w, tc.h, tc.frames, err)
		}
	}
}

func TestCapacity(t *testing.T) {
	// 64x64 = 64 blocks per frame. Two frames hold 128 bits; after the
	// 120-bit header that leaves exactly one payload byte.
	if got := Capacity(64, 64, 2); got != 1 {
		t.Fatalf("Capacity(64,64,2) = %d, want 1", got)
	}
	if got := Capacity(64, 64, 1); got != 0 {
		t.Fatalf("Capacity(64,64,1) = %d, want 0", got)
	}
	if got := Capacity(4, 4, 10); got != 0 {
		t.Fatalf("Capacity(4,4,10) = %d, want 0", got)
	}
}
