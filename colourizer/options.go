package colourizer

import (
	"fmt"
	"math"

	"github.com/SuzukiDaishi/colourizer-go/dsp/filterbank"
)

const (
	defaultFilterFrequency = 440.0
	defaultFilterQ         = 100.0
	defaultFilterGainDB    = 20.0
	defaultGain            = 1.0
	defaultMix             = 1.0
	defaultMode            = ModeMulti
	defaultMaxBlockSize    = 4096
)

// Option mutates engine construction parameters.
type Option func(*engineConfig) error

type engineConfig struct {
	filterFreq   float64
	filterQ      float64
	filterGainDB float64

	gain float64
	mix  float64
	mode ProcessingMode

	downmix      DownmixPolicy
	maxBlockSize int

	useBank   bool
	noteGains [filterbank.NoteCount]float64
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		filterFreq:   defaultFilterFrequency,
		filterQ:      defaultFilterQ,
		filterGainDB: defaultFilterGainDB,
		gain:         defaultGain,
		mix:          defaultMix,
		mode:         defaultMode,
		downmix:      DownmixAverage,
		maxBlockSize: defaultMaxBlockSize,
		noteGains:    filterbank.MiyakoBushi,
	}
}

// WithFilterFrequency sets the peaking filter center frequency in Hz.
// The value is validated against Nyquist at Configure time.
func WithFilterFrequency(freqHz float64) Option {
	return func(cfg *engineConfig) error {
		if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
			return fmt.Errorf("%w: filter frequency must be > 0 and finite: %f", ErrInvalidParameter, freqHz)
		}
		cfg.filterFreq = freqHz
		return nil
	}
}

// WithFilterQ sets the peaking filter quality factor.
func WithFilterQ(q float64) Option {
	return func(cfg *engineConfig) error {
		if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			return fmt.Errorf("%w: filter q must be > 0 and finite: %f", ErrInvalidParameter, q)
		}
		cfg.filterQ = q
		return nil
	}
}

// WithFilterGainDB sets the peaking filter gain in dB.
func WithFilterGainDB(gainDB float64) Option {
	return func(cfg *engineConfig) error {
		if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
			return fmt.Errorf("%w: filter gain must be finite: %f", ErrInvalidParameter, gainDB)
		}
		cfg.filterGainDB = gainDB
		return nil
	}
}

// WithGain sets the post-filter linear gain.
func WithGain(gain float64) Option {
	return func(cfg *engineConfig) error {
		if gain < 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
			return fmt.Errorf("%w: gain must be >= 0 and finite: %f", ErrInvalidParameter, gain)
		}
		cfg.gain = gain
		return nil
	}
}

// WithMix sets the dry/wet blend in [0, 1].
func WithMix(mix float64) Option {
	return func(cfg *engineConfig) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("%w: mix must be in [0, 1]: %f", ErrInvalidParameter, mix)
		}
		cfg.mix = mix
		return nil
	}
}

// WithMode sets the initial processing mode.
func WithMode(mode ProcessingMode) Option {
	return func(cfg *engineConfig) error {
		if !mode.valid() {
			return fmt.Errorf("%w: processing mode %d", ErrInvalidParameter, int(mode))
		}
		cfg.mode = mode
		return nil
	}
}

// WithDownmixPolicy sets how Mono mode derives its representative signal.
func WithDownmixPolicy(policy DownmixPolicy) Option {
	return func(cfg *engineConfig) error {
		if !policy.valid() {
			return fmt.Errorf("%w: downmix policy %d", ErrInvalidParameter, int(policy))
		}
		cfg.downmix = policy
		return nil
	}
}

// WithMaxBlockSize sets the internal chunk size. Blocks longer than this
// are processed in chunks through preallocated scratch, keeping Process
// allocation-free for any host block length.
func WithMaxBlockSize(samples int) Option {
	return func(cfg *engineConfig) error {
		if samples <= 0 {
			return fmt.Errorf("%w: max block size must be > 0: %d", ErrInvalidParameter, samples)
		}
		cfg.maxBlockSize = samples
		return nil
	}
}

// WithNoteBank replaces the single peaking section with a per-note filter
// bank (see package filterbank) using the given pitch-class gains, and
// exposes the 12 note gains on the parameter surface.
func WithNoteBank(gains [filterbank.NoteCount]float64) Option {
	return func(cfg *engineConfig) error {
		for i, g := range gains {
			if g < 0 || g > 1 || math.IsNaN(g) || math.IsInf(g, 0) {
				return fmt.Errorf("%w: note gain %s must be in [0, 1]: %f", ErrInvalidParameter, filterbank.NoteName(i), g)
			}
		}
		cfg.useBank = true
		cfg.noteGains = gains
		return nil
	}
}
