package vciph

import "math"

// BlockTransform maps one spatial sample block to its frequency-domain
// coefficient block and back. Blocks are flat row-major [64]float64
// arrays; Forward and Inverse must be exact inverses of each other up to
// floating-point rounding. The default is [DCT8]; callers with their own
// transform can inject it via [WithTransform].
type BlockTransform interface {
	Forward(spatial, freq *[blockSamples]float64)
	Inverse(freq, spatial *[blockSamples]float64)
}

// DCT8 is the orthonormal 8x8 type-II discrete cosine transform pair.
var DCT8 BlockTransform = dct8{}

// cosTab[k][n] = a(k) * cos((2n+1) k pi / 16), the orthonormal 1D basis.
var cosTab [BlockSize][BlockSize]float64

func init() {
	for k := 0; k < BlockSize; k++ {
		a := math.Sqrt(2.0 / BlockSize)
		if k == 0 {
			a = math.Sqrt(1.0 / BlockSize)
		}
		for n := 0; n < BlockSize; n++ {
			cosTab[k][n] = a * math.Cos(float64(2*n+1)*float64(k)*math.Pi/(2*BlockSize))
		}
	}
}

type dct8 struct{}

func (dct8) Forward(spatial, freq *[blockSamples]float64) {
	var tmp [blockSamples]float64
	// transform columns: tmp[u][x] = sum_y cosTab[u][y] * spatial[y][x]
	for u := 0; u < BlockSize; u++ {
		for x := 0; x < BlockSize; x++ {
			var s float64
			for y := 0; y < BlockSize; y++ {
				s += cosTab[u][y] * spatial[y*BlockSize+x]
			}
			tmp[u*BlockSize+x] = s
		}
	}
	// transform rows: freq[u][v] = sum_x tmp[u][x] * cosTab[v][x]
	for u := 0; u < BlockSize; u++ {
		for v := 0; v < BlockSize; v++ {
			var s float64
			for x := 0; x < BlockSize; x++ {
				s += tmp[u*BlockSize+x] * cosTab[v][x]
			}
			freq[u*BlockSize+v] = s
		}
	}
}

func (dct8) Inverse(freq, spatial *[blockSamples]float64) {
	var tmp [blockSamples]float64
	// invert rows: tmp[u][x] = sum_v freq[u][v] * cosTab[v][x]
	for u := 0; u < BlockSize; u++ {
		for x := 0; x < BlockSize; x++ {
			var s float64
			for v := 0; v < BlockSize; v++ {
				s += freq[u*BlockSize+v] * cosTab[v][x]
			}
			tmp[u*BlockSize+x] = s
		}
	}
	// invert columns: spatial[y][x] = sum_u cosTab[u][y] * tmp[u][x]
	for y := 0; y < BlockSize; y++ {
		for x := 0; x < BlockSize; x++ {
			var s float64
			for u := 0; u < BlockSize; u++ {
				s += cosTab[u][y] * tmp[u*BlockSize+x]
			}
			spatial[y*BlockSize+x] = s
		}
	}
}
