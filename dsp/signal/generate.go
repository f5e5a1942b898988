// Package signal generates deterministic probe signals for tests and
// measurement harnesses.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/SuzukiDaishi/colourizer-go/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed sets the deterministic random seed for noise generation.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// SinePlanar generates a planar multi-channel block with the same sine on
// every channel, shaped for Engine.Process.
func (g *Generator) SinePlanar(freqHz, amplitude float64, channels, samples int) ([][]float64, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("sine channels must be > 0: %d", channels)
	}

	mono, err := g.Sine(freqHz, amplitude, samples)
	if err != nil {
		return nil, err
	}

	block := make([][]float64, channels)
	block[0] = mono
	for c := 1; c < channels; c++ {
		block[c] = make([]float64, samples)
		copy(block[c], mono)
	}

	return block, nil
}

// Impulse generates a unit impulse: 1 at sample zero, 0 elsewhere.
func (g *Generator) Impulse(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	out[0] = 1

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}
