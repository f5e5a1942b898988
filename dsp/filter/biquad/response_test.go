package biquad

import (
	"math"
	"testing"
)

func TestResponsePassthrough(t *testing.T) {
	c := Coefficients{B0: 1}

	for _, freq := range []float64{10, 440, 1000, 20000} {
		if got := c.Magnitude(freq, 48000); math.Abs(got-1) > 1e-12 {
			t.Errorf("Magnitude(%v) = %v, want 1", freq, got)
		}
		if got := c.Phase(freq, 48000); math.Abs(got) > 1e-12 {
			t.Errorf("Phase(%v) = %v, want 0", freq, got)
		}
	}
}

func TestResponseGain(t *testing.T) {
	c := Coefficients{B0: 2}

	if got := c.Magnitude(440, 44100); math.Abs(got-2) > 1e-12 {
		t.Errorf("Magnitude = %v, want 2", got)
	}

	want := 20 * math.Log10(2)
	if got := c.MagnitudeDB(440, 44100); math.Abs(got-want) > 1e-9 {
		t.Errorf("MagnitudeDB = %v, want %v", got, want)
	}
}

func TestResponseOneSampleDelayPhase(t *testing.T) {
	// y[n] = x[n-1] has |H| = 1 and phase -w at every frequency.
	c := Coefficients{B1: 1}

	sampleRate := 48000.0
	freq := 3000.0
	w := 2 * math.Pi * freq / sampleRate

	if got := c.Magnitude(freq, sampleRate); math.Abs(got-1) > 1e-12 {
		t.Errorf("Magnitude = %v, want 1", got)
	}

	if got := c.Phase(freq, sampleRate); math.Abs(got-(-w)) > 1e-12 {
		t.Errorf("Phase = %v, want %v", got, -w)
	}
}

func TestMagnitudeDBFloor(t *testing.T) {
	c := Coefficients{} // all-zero numerator, silent filter

	if got := c.MagnitudeDB(1000, 48000); got != -240 {
		t.Errorf("MagnitudeDB of silent filter = %v, want -240", got)
	}
}
