package colourizer

import (
	"errors"
	"math"
	"testing"

	"github.com/SuzukiDaishi/colourizer-go/dsp/filterbank"
)

func TestNewEngineDefaults(t *testing.T) {
	e := newTestEngine(t)

	if got := e.Gain(); got != 1 {
		t.Errorf("default gain = %v, want 1", got)
	}
	if got := e.Mix(); got != 1 {
		t.Errorf("default mix = %v, want 1", got)
	}
	if got := e.Mode(); got != ModeMulti {
		t.Errorf("default mode = %v, want Multi", got)
	}
	if got := e.Downmix(); got != DownmixAverage {
		t.Errorf("default downmix = %v, want Average", got)
	}
	if got := e.FilterFrequency(); got != 440 {
		t.Errorf("default filter frequency = %v, want 440", got)
	}
	if got := e.FilterQ(); got != 100 {
		t.Errorf("default filter q = %v, want 100", got)
	}
	if got := e.FilterGainDB(); got != 20 {
		t.Errorf("default filter gain = %v, want 20", got)
	}
}

func TestNewEngineOptionValidation(t *testing.T) {
	cases := []struct {
		name string
		opt  Option
	}{
		{"negative frequency", WithFilterFrequency(-1)},
		{"nan frequency", WithFilterFrequency(math.NaN())},
		{"zero q", WithFilterQ(0)},
		{"infinite filter gain", WithFilterGainDB(math.Inf(1))},
		{"negative gain", WithGain(-0.5)},
		{"mix above one", WithMix(1.1)},
		{"nan mix", WithMix(math.NaN())},
		{"bad mode", WithMode(ProcessingMode(3))},
		{"bad downmix", WithDownmixPolicy(DownmixPolicy(3))},
		{"zero max block", WithMaxBlockSize(0)},
		{"note gain above one", WithNoteBank([filterbank.NoteCount]float64{0: 2})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewEngine(tc.opt); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("NewEngine error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestNewEngineAppliesOptions(t *testing.T) {
	e := newTestEngine(t,
		WithFilterFrequency(880),
		WithFilterQ(10),
		WithFilterGainDB(6),
		WithGain(0.5),
		WithMix(0.3),
		WithMode(ModeMono),
		WithDownmixPolicy(DownmixFirstChannel),
	)

	if got := e.FilterFrequency(); got != 880 {
		t.Errorf("filter frequency = %v, want 880", got)
	}
	if got := e.FilterQ(); got != 10 {
		t.Errorf("filter q = %v, want 10", got)
	}
	if got := e.FilterGainDB(); got != 6 {
		t.Errorf("filter gain = %v, want 6", got)
	}
	if got := e.Gain(); got != 0.5 {
		t.Errorf("gain = %v, want 0.5", got)
	}
	if got := e.Mix(); got != 0.3 {
		t.Errorf("mix = %v, want 0.3", got)
	}
	if got := e.Mode(); got != ModeMono {
		t.Errorf("mode = %v, want Mono", got)
	}
	if got := e.Downmix(); got != DownmixFirstChannel {
		t.Errorf("downmix = %v, want FirstChannel", got)
	}
}

func TestConfigureRejectsFrequencyAboveNyquist(t *testing.T) {
	// 30 kHz center is fine at 96 kHz but invalid at 44.1 kHz.
	e := newTestEngine(t, WithFilterFrequency(30000))

	if err := e.Configure(44100, 2); err == nil {
		t.Fatal("Configure with center above Nyquist = nil error, want error")
	}
	if e.Configured() {
		t.Error("Configured() = true after failed Configure")
	}

	if err := e.Configure(96000, 2); err != nil {
		t.Fatalf("Configure at 96 kHz: %v", err)
	}
}
