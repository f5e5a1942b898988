package filterbank

import (
	"fmt"
	"math"

	"github.com/SuzukiDaishi/colourizer-go/dsp/filter/biquad"
	"github.com/SuzukiDaishi/colourizer-go/dsp/filter/design"
)

// NoteCount is the number of pitch classes (C through B).
const NoteCount = 12

const (
	// Piano range C0 (MIDI 12) through B8 (MIDI 119).
	lowestNote  = 12
	highestNote = 119

	// Narrow peak approximating a band-pass response per note.
	bankQ      = 100.0
	bankGainDB = 20.0
)

// MiyakoBushi is the default pitch-class gain set: a Japanese pentatonic
// scale with C, C#, F, G and G# audible.
var MiyakoBushi = [NoteCount]float64{1, 1, 0, 0, 0, 1, 0, 1, 1, 0, 0, 0}

// NoteFrequency returns the equal-temperament frequency in Hz for a MIDI
// note number (A4 = 69 = 440 Hz).
func NoteFrequency(midiNote int) float64 {
	return 440 * math.Pow(2, (float64(midiNote)-69)/12)
}

// Bank is a colour filter bank with one peaking section per piano note
// and a gain per pitch class.
type Bank struct {
	sampleRate float64
	sections   []biquad.Section
	classes    []int // pitch class of each section
	gains      [NoteCount]float64
}

// NewBank creates a bank for the given sample rate with the MiyakoBushi
// default gains. Notes at or above Nyquist are skipped, so the bank works
// at any positive sample rate.
func NewBank(sampleRate float64) (*Bank, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("filterbank: sample rate must be > 0 and finite: %f", sampleRate)
	}

	b := &Bank{
		sampleRate: sampleRate,
		gains:      MiyakoBushi,
	}

	nyquist := sampleRate / 2
	for note := lowestNote; note <= highestNote; note++ {
		freq := NoteFrequency(note)
		if freq >= nyquist {
			break
		}

		coeffs, err := design.Peak(freq, bankGainDB, bankQ, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("filterbank: design note %d: %w", note, err)
		}

		b.sections = append(b.sections, *biquad.NewSection(coeffs))
		b.classes = append(b.classes, note%NoteCount)
	}

	return b, nil
}

// SetGains replaces the 12 pitch-class gains (C..B). Gains must be in
// [0, 1] and finite.
func (b *Bank) SetGains(gains [NoteCount]float64) error {
	for i, g := range gains {
		if g < 0 || g > 1 || math.IsNaN(g) || math.IsInf(g, 0) {
			return fmt.Errorf("filterbank: gain for class %d must be in [0, 1]: %f", i, g)
		}
	}

	b.gains = gains

	return nil
}

// Gains returns the current pitch-class gains.
func (b *Bank) Gains() [NoteCount]float64 {
	return b.gains
}

// SampleRate returns the sample rate the bank was designed for.
func (b *Bank) SampleRate() float64 {
	return b.sampleRate
}

// Sections returns the number of active filter sections.
func (b *Bank) Sections() int {
	return len(b.sections)
}

// Reset zeroes the state of every section.
func (b *Bank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}

// ProcessSample filters one input sample through the full bank:
//
//	y = sum(g_i * f_i(x)) - sum(g_i) * x
//
// The subtraction cancels the unity passband of each peaking section, so
// only the boosted bands of audible pitch classes remain.
func (b *Bank) ProcessSample(x float64) float64 {
	sum := 0.0
	gainSum := 0.0

	for i := range b.sections {
		g := b.gains[b.classes[i]]
		sum += b.sections[i].ProcessSample(x) * g
		gainSum += g
	}

	return sum - gainSum*x
}

// ProcessBlockTo filters src into dst sample by sample. Both slices must
// have the same length; dst may alias src. Zero-alloc.
func (b *Bank) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = b.ProcessSample(x)
	}
}
