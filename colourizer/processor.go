package colourizer

import (
	"github.com/SuzukiDaishi/colourizer-go/dsp/filter/biquad"
	"github.com/SuzukiDaishi/colourizer-go/dsp/filterbank"
)

// colourUnit is the per-stream filtering element of the channel
// processor: a single peaking section or a full note bank.
type colourUnit interface {
	ProcessBlockTo(dst, src []float64)
	Reset()
}

// channelProcessor owns one shared unit (Mono topology) and one unit per
// channel (Multi topology). Both are allocated up front so a mode change
// never allocates on the audio path.
type channelProcessor struct {
	mono  colourUnit
	multi []colourUnit

	// concrete views for parameter pushes
	sections []*biquad.Section
	banks    []*filterbank.Bank
}

func newChannelProcessor(cfg *engineConfig, coeffs biquad.Coefficients, sampleRate float64, channels int) (*channelProcessor, error) {
	p := &channelProcessor{}

	newUnit := func() (colourUnit, error) {
		if cfg.useBank {
			bank, err := filterbank.NewBank(sampleRate)
			if err != nil {
				return nil, err
			}
			if err := bank.SetGains(cfg.noteGains); err != nil {
				return nil, err
			}
			p.banks = append(p.banks, bank)
			return bank, nil
		}

		section := biquad.NewSection(coeffs)
		p.sections = append(p.sections, section)
		return section, nil
	}

	var err error

	p.mono, err = newUnit()
	if err != nil {
		return nil, err
	}

	p.multi = make([]colourUnit, channels)
	for c := range p.multi {
		p.multi[c], err = newUnit()
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// setCoefficients pushes a new coefficient set into every peaking section
// without touching filter history. No-op for bank units.
func (p *channelProcessor) setCoefficients(c biquad.Coefficients) {
	for _, s := range p.sections {
		s.SetCoefficients(c)
	}
}

// setNoteGains pushes new pitch-class gains into every bank. No-op for
// single-section units. Gains are validated before they reach a snapshot,
// so the per-bank error cannot fire here.
func (p *channelProcessor) setNoteGains(gains [filterbank.NoteCount]float64) {
	for _, b := range p.banks {
		_ = b.SetGains(gains)
	}
}

// reset zeroes all filter state in both topologies.
func (p *channelProcessor) reset() {
	p.mono.Reset()
	for _, u := range p.multi {
		u.Reset()
	}
}
