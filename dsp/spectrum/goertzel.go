package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT bin without computing a full FFT,
// which makes it a cheap probe for the level of one tone in a signal.
//
// The analyzer is stateful: Power and Magnitude reflect every sample
// processed since the last Reset. For two tones to be distinguishable the
// processed block should span well over sampleRate/|f1-f2| samples.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	samples    int
}

// NewGoertzel creates an analyzer for the target frequency, which must
// lie in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("goertzel: frequency must be in [0, sampleRate/2]: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
	g.samples = 0
}

// ProcessSample updates the state with one input sample.
func (g *Goertzel) ProcessSample(x float64) {
	s := x + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.samples++
}

// ProcessBlock updates the state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
	g.samples += len(input)
}

// Power returns the squared magnitude of the probed bin over all samples
// processed since the last Reset.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the probed bin.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(math.Max(0, g.Power()))
}

// Amplitude estimates the amplitude of a steady tone at the probe
// frequency, normalizing the bin magnitude by the block length.
func (g *Goertzel) Amplitude() float64 {
	if g.samples == 0 {
		return 0
	}

	return 2 * g.Magnitude() / float64(g.samples)
}
