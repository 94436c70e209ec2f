package vciph

import "math"

// loadBlock copies the 8x8 luma block at (row, col) into dst.
func loadBlock(f *Frame, row, col int, dst *[blockSamples]float64) {
	for y := 0; y < BlockSize; y++ {
		base := (row+y)*f.Width + col
		for x := 0; x < BlockSize; x++ {
			dst[y*BlockSize+x] = float64(f.Y[base+x])
		}
	}
}

// storeBlock writes src back into the frame, rounding to the nearest
// sample value and clamping to the 8-bit range.
func storeBlock(f *Frame, row, col int, src *[blockSamples]float64) {
	for y := 0; y < BlockSize; y++ {
		base := (row+y)*f.Width + col
		for x := 0; x < BlockSize; x++ {
			v := math.Round(src[y*BlockSize+x])
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			f.Y[base+x] = uint8(v)
		}
	}
}
