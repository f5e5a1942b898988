package colourizer

import (
	"fmt"
	"math"

	"github.com/SuzukiDaishi/colourizer-go/dsp/filterbank"
)

// Host-visible parameter names.
const (
	ParamGain = "Gain"
	ParamMode = "Processing Mode"
	ParamMix  = "Dry/Wet"
)

// ParameterInfo describes one entry of the host-settable parameter
// surface: a fixed, statically validated table rather than dynamic
// reflection.
type ParameterInfo struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// Parameters returns the declared parameter surface. With the note bank
// enabled the 12 pitch-class gains (C..B) are part of the surface.
func (e *Engine) Parameters() []ParameterInfo {
	params := []ParameterInfo{
		{Name: ParamGain, Min: 0, Max: math.Inf(1), Default: defaultGain},
		{Name: ParamMode, Min: 0, Max: 1, Default: float64(defaultMode)},
		{Name: ParamMix, Min: 0, Max: 1, Default: defaultMix},
	}

	if e.cfg.useBank {
		for class := 0; class < filterbank.NoteCount; class++ {
			params = append(params, ParameterInfo{
				Name:    filterbank.NoteName(class),
				Min:     0,
				Max:     1,
				Default: filterbank.MiyakoBushi[class],
			})
		}
	}

	return params
}

// SetParameter sets a named parameter. Out-of-range values fail with
// ErrInvalidParameter and leave the prior value intact; names outside the
// surface fail with ErrUnknownParameter.
//
// Processing Mode takes 0 (Mono) or 1 (Multi).
func (e *Engine) SetParameter(name string, value float64) error {
	switch name {
	case ParamGain:
		return e.SetGain(value)
	case ParamMix:
		return e.SetMix(value)
	case ParamMode:
		switch value {
		case 0:
			return e.SetMode(ModeMono)
		case 1:
			return e.SetMode(ModeMulti)
		default:
			return fmt.Errorf("%w: processing mode value %f", ErrInvalidParameter, value)
		}
	}

	if e.cfg.useBank {
		class, err := filterbank.ParseNote(name)
		if err == nil {
			return e.SetNoteGain(class, value)
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// SetParameterText sets a named parameter from its host string form;
// only Processing Mode ("Mono"/"Multi") has one.
func (e *Engine) SetParameterText(name, value string) error {
	if name != ParamMode {
		return fmt.Errorf("%w: %q has no text form", ErrUnknownParameter, name)
	}

	mode, err := ParseProcessingMode(value)
	if err != nil {
		return err
	}

	return e.SetMode(mode)
}

// Parameter returns the current value of a named parameter.
func (e *Engine) Parameter(name string) (float64, error) {
	snap := e.snap.Load()

	switch name {
	case ParamGain:
		return snap.gain, nil
	case ParamMix:
		return snap.mix, nil
	case ParamMode:
		return float64(snap.mode), nil
	}

	if e.cfg.useBank {
		class, err := filterbank.ParseNote(name)
		if err == nil {
			return snap.noteGains[class], nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// SetNoteGain sets one pitch-class gain of the note bank (class 0 = C).
func (e *Engine) SetNoteGain(class int, gain float64) error {
	if class < 0 || class >= filterbank.NoteCount {
		return fmt.Errorf("%w: note class %d", ErrInvalidParameter, class)
	}

	if gain < 0 || gain > 1 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fmt.Errorf("%w: note gain %s must be in [0, 1]: %f", ErrInvalidParameter, filterbank.NoteName(class), gain)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.publishLocked(func(s *paramSnapshot) { s.noteGains[class] = gain })

	return nil
}
