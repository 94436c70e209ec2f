package vciph

import (
	"math"
	"math/rand"
	"testing"
)

func TestDCT8_RoundTripIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var spatial, freq, back [blockSamples]float64
	for trial := 0; trial < 20; trial++ {
		for i := range spatial {
			spatial[i] = float64(rng.Intn(256))
		}
		DCT8.Forward(&spatial, &freq)
		DCT8.Inverse(&freq, &back)
		for i := range spatial {
			if math.Abs(back[i]-spatial[i]) > 1e-9 {
				t.Fatalf("trial %d sample %d: %v != %v", trial, i, back[i], spatial[i])
			}
		}
	}
}

func TestDCT8_ConstantBlock(t *testing.T) {
	// A flat block concentrates all energy in the DC coefficient; for
	// the orthonormal transform DC = 8 * value.
	var spatial, freq [blockSamples]float64
	for i := range spatial {
		spatial[i] = 100
	}
	DCT8.Forward(&spatial, &freq)
	if math.Abs(freq[0]-800) > 1e-9 {
		t.Fatalf("DC = %v, want 800", freq[0])
	}
	for i := 1; i < blockSamples; i++ {
		if math.Abs(freq[i]) > 1e-9 {
			t.Fatalf("AC coefficient %d = %v, want 0", i, freq[i])
		}
	}
}

func TestDCT8_EnergyPreserved(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var spatial, freq [blockSamples]float64
	for i := range spatial {
		spatial[i] = float64(rng.Intn(256))
	}
	DCT8.Forward(&spatial, &freq)
	var es, ef float64
	for i := range spatial {
		es += spatial[i] * spatial[i]
		ef += freq[i] * freq[i]
	}
	if math.Abs(es-ef) > 1e-6 {
		t.Fatalf("energy not preserved: spatial %v freq %v", es, ef)
	}
}
