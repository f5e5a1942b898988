// Package spectrum provides magnitude/power helpers for complex spectra
// and a Goertzel single-bin tone probe.
package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Magnitude returns |X[k]| for each complex spectrum bin, using SIMD
// block math for the square root of the summed squares.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)

	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Power(out, re, im)

	return out
}

// MagnitudeDB converts linear magnitudes to dB in place, flooring at
// -240 dB to keep zeros finite.
func MagnitudeDB(mags []float64) {
	const floor = 1e-12
	for i, m := range mags {
		mags[i] = 20 * math.Log10(math.Max(floor, m))
	}
}
