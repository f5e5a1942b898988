// Package response measures the frequency behavior of a mono processor:
// FFT magnitude response from its impulse response, and probe-tone
// selectivity ratios.
package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/SuzukiDaishi/colourizer-go/dsp/core"
	"github.com/SuzukiDaishi/colourizer-go/dsp/signal"
	"github.com/SuzukiDaishi/colourizer-go/dsp/spectrum"
)

// Errors returned by measurement functions.
var (
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("response: fft size must be a power of two >= 2")
	ErrInvalidFrequency  = errors.New("response: frequency must be positive and below Nyquist")
	ErrNilProcessor      = errors.New("response: nil processor")
)

// Processor filters one mono block in place. A fresh processor (zeroed
// filter state) should be supplied per measurement.
type Processor func(buf []float64)

// Measurement holds a sampled magnitude response.
type Measurement struct {
	Frequencies []float64 // bin center frequencies in Hz, 0..Nyquist
	MagnitudeDB []float64 // response magnitude in dB per bin
}

// Measure drives proc with a unit impulse and returns the FFT magnitude
// response over fftSize points (fftSize/2+1 non-negative-frequency bins).
func Measure(proc Processor, sampleRate float64, fftSize int) (Measurement, error) {
	if proc == nil {
		return Measurement{}, ErrNilProcessor
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Measurement{}, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return Measurement{}, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	impulse := make([]float64, fftSize)
	impulse[0] = 1
	proc(impulse)

	in := make([]complex128, fftSize)
	for i, v := range impulse {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Measurement{}, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	err = plan.Forward(out, in)
	if err != nil {
		return Measurement{}, fmt.Errorf("response: forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	mags := spectrum.Magnitude(out[:bins])
	spectrum.MagnitudeDB(mags)

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * sampleRate / float64(fftSize)
	}

	return Measurement{Frequencies: freqs, MagnitudeDB: mags}, nil
}

// At returns the measured magnitude in dB at the bin closest to freqHz.
func (m Measurement) At(freqHz float64) float64 {
	if len(m.Frequencies) == 0 {
		return math.Inf(-1)
	}

	best := 0
	bestDist := math.Abs(m.Frequencies[0] - freqHz)
	for i, f := range m.Frequencies[1:] {
		if d := math.Abs(f - freqHz); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}

	return m.MagnitudeDB[best]
}

// Deviation drives proc with a one-second unit sine probe at toneHz and
// returns the mean absolute deviation between the processor's output and
// the dry probe. A colour filter leaves off-center tones nearly untouched
// and reshapes on-center tones heavily, so the deviation acts as a
// per-tone effect strength.
func Deviation(proc Processor, toneHz, sampleRate float64) (float64, error) {
	if proc == nil {
		return 0, ErrNilProcessor
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	if toneHz <= 0 || toneHz >= sampleRate/2 {
		return 0, fmt.Errorf("%w: %f", ErrInvalidFrequency, toneHz)
	}

	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	samples := int(sampleRate)

	probe, err := gen.Sine(toneHz, 1, samples)
	if err != nil {
		return 0, err
	}

	dry := make([]float64, samples)
	copy(dry, probe)
	proc(probe)

	sum := 0.0
	for i, y := range probe {
		sum += math.Abs(y - dry[i])
	}

	return sum / float64(samples), nil
}

// Selectivity measures how sharply a filter factory discriminates between
// a probe tone at onHz and one at offHz: the ratio of their mean absolute
// deviations. newProc must return a fresh processor per call so the two
// probes never share filter state.
func Selectivity(newProc func() (Processor, error), onHz, offHz, sampleRate float64) (float64, error) {
	procOn, err := newProc()
	if err != nil {
		return 0, err
	}

	on, err := Deviation(procOn, onHz, sampleRate)
	if err != nil {
		return 0, err
	}

	procOff, err := newProc()
	if err != nil {
		return 0, err
	}

	off, err := Deviation(procOff, offHz, sampleRate)
	if err != nil {
		return 0, err
	}

	if off == 0 {
		return math.Inf(1), nil
	}

	return on / off, nil
}
