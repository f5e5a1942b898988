package response

import (
	"errors"
	"math"
	"testing"

	"github.com/SuzukiDaishi/colourizer-go/dsp/filter/biquad"
	"github.com/SuzukiDaishi/colourizer-go/dsp/filter/design"
)

func identity(buf []float64) {}

func gain2(buf []float64) {
	for i := range buf {
		buf[i] *= 2
	}
}

func TestMeasureIdentity(t *testing.T) {
	m, err := Measure(identity, 48000, 1024)
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Frequencies) != 513 || len(m.MagnitudeDB) != 513 {
		t.Fatalf("bins = %d/%d, want 513", len(m.Frequencies), len(m.MagnitudeDB))
	}

	if m.Frequencies[0] != 0 {
		t.Errorf("first bin = %v Hz, want 0", m.Frequencies[0])
	}
	if got := m.Frequencies[512]; math.Abs(got-24000) > 1e-9 {
		t.Errorf("last bin = %v Hz, want 24000", got)
	}

	for i, db := range m.MagnitudeDB {
		if math.Abs(db) > 1e-6 {
			t.Fatalf("identity response bin %d = %v dB, want 0", i, db)
		}
	}
}

func TestMeasureGain(t *testing.T) {
	m, err := Measure(gain2, 48000, 256)
	if err != nil {
		t.Fatal(err)
	}

	want := 20 * math.Log10(2)
	for i, db := range m.MagnitudeDB {
		if math.Abs(db-want) > 1e-6 {
			t.Fatalf("gain response bin %d = %v dB, want %v", i, db, want)
		}
	}
}

func TestMeasurePeakFilter(t *testing.T) {
	coeffs, err := design.Peak(1000, 12, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}

	section := biquad.NewSection(coeffs)
	m, err := Measure(section.ProcessBlock, 48000, 8192)
	if err != nil {
		t.Fatal(err)
	}

	if got := m.At(1000); math.Abs(got-12) > 0.1 {
		t.Errorf("peak response at center = %v dB, want ~12 dB", got)
	}

	if got := m.At(10000); math.Abs(got) > 0.5 {
		t.Errorf("peak response at 10 kHz = %v dB, want ~0 dB", got)
	}
}

func TestMeasureErrors(t *testing.T) {
	if _, err := Measure(nil, 48000, 1024); !errors.Is(err, ErrNilProcessor) {
		t.Errorf("nil proc error = %v, want ErrNilProcessor", err)
	}

	if _, err := Measure(identity, 0, 1024); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("sr=0 error = %v, want ErrInvalidSampleRate", err)
	}

	for _, size := range []int{0, 1, 1000} {
		if _, err := Measure(identity, 48000, size); !errors.Is(err, ErrInvalidFFTSize) {
			t.Errorf("fftSize=%d error = %v, want ErrInvalidFFTSize", size, err)
		}
	}
}

func TestMeasurementAt(t *testing.T) {
	m := Measurement{
		Frequencies: []float64{0, 100, 200, 300},
		MagnitudeDB: []float64{1, 2, 3, 4},
	}

	if got := m.At(140); got != 2 {
		t.Errorf("At(140) = %v, want 2 (nearest bin 100)", got)
	}
	if got := m.At(1000); got != 4 {
		t.Errorf("At(1000) = %v, want 4 (clamped to last bin)", got)
	}

	empty := Measurement{}
	if got := empty.At(100); !math.IsInf(got, -1) {
		t.Errorf("At on empty measurement = %v, want -Inf", got)
	}
}

func TestDeviationIdentity(t *testing.T) {
	got, err := Deviation(identity, 440, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("identity deviation = %v, want 0", got)
	}
}

func TestDeviationGain(t *testing.T) {
	// |2x - x| averaged over whole cycles of a unit sine is 2/pi.
	got, err := Deviation(gain2, 441, 44100)
	if err != nil {
		t.Fatal(err)
	}

	want := 2 / math.Pi
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("gain deviation = %v, want %v", got, want)
	}
}

func TestDeviationErrors(t *testing.T) {
	if _, err := Deviation(nil, 440, 44100); !errors.Is(err, ErrNilProcessor) {
		t.Errorf("nil proc error = %v, want ErrNilProcessor", err)
	}
	if _, err := Deviation(identity, 440, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("sr=0 error = %v, want ErrInvalidSampleRate", err)
	}
	if _, err := Deviation(identity, 0, 44100); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("freq=0 error = %v, want ErrInvalidFrequency", err)
	}
	if _, err := Deviation(identity, 30000, 44100); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("freq above nyquist error = %v, want ErrInvalidFrequency", err)
	}
}

// A narrow peaking filter must colour a tone at its center far more than
// one 10 Hz away.
func TestSelectivityNarrowPeak(t *testing.T) {
	for _, sampleRate := range []float64{44100, 48000, 96000} {
		newProc := func() (Processor, error) {
			coeffs, err := design.Peak(440, 20, 100, sampleRate)
			if err != nil {
				return nil, err
			}
			section := biquad.NewSection(coeffs)
			return section.ProcessBlock, nil
		}

		ratio, err := Selectivity(newProc, 440, 450, sampleRate)
		if err != nil {
			t.Fatalf("sr=%v: %v", sampleRate, err)
		}

		if ratio < 10 {
			t.Errorf("sr=%v: selectivity 440/450 = %v, want > 10", sampleRate, ratio)
		}
	}
}

func TestSelectivityZeroOff(t *testing.T) {
	newProc := func() (Processor, error) {
		return identity, nil
	}

	ratio, err := Selectivity(newProc, 440, 450, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(ratio, 1) {
		t.Errorf("identity selectivity = %v, want +Inf", ratio)
	}
}
