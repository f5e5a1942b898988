package core

import (
	"math"
	"testing"
)

func TestDefaultProcessorConfig(t *testing.T) {
	cfg := DefaultProcessorConfig()
	if cfg.SampleRate != 48000 {
		t.Errorf("default sample rate = %v, want 48000", cfg.SampleRate)
	}
	if cfg.BlockSize != 1024 {
		t.Errorf("default block size = %v, want 1024", cfg.BlockSize)
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(44100), WithBlockSize(256))
	if cfg.SampleRate != 44100 {
		t.Errorf("sample rate = %v, want 44100", cfg.SampleRate)
	}
	if cfg.BlockSize != 256 {
		t.Errorf("block size = %v, want 256", cfg.BlockSize)
	}

	// Non-positive values leave the defaults in place.
	cfg = ApplyProcessorOptions(WithSampleRate(-1), WithBlockSize(0), nil)
	if cfg.SampleRate != 48000 || cfg.BlockSize != 1024 {
		t.Errorf("config after invalid options = %+v, want defaults", cfg)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		value, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0.5, 1, 0, 0.5}, // swapped bounds
		{5, 1, 0, 1},
	}

	for _, tc := range cases {
		if got := Clamp(tc.value, tc.min, tc.max); got != tc.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tc.value, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-9) {
		t.Error("values within eps reported unequal")
	}
	if NearlyEqual(1.0, 1.1, 1e-9) {
		t.Error("distant values reported equal")
	}
	if !NearlyEqual(0, 0, 0) {
		t.Error("zeros with default eps reported unequal")
	}
	if !NearlyEqual(1e12, 1e12+1, 1e-9) {
		t.Error("relatively close large values reported unequal")
	}
}

func TestDBConversions(t *testing.T) {
	if got := DBToLinear(20); math.Abs(got-10) > 1e-12 {
		t.Errorf("DBToLinear(20) = %v, want 10", got)
	}
	if got := DBToLinear(0); got != 1 {
		t.Errorf("DBToLinear(0) = %v, want 1", got)
	}
	if got := LinearToDB(10); math.Abs(got-20) > 1e-12 {
		t.Errorf("LinearToDB(10) = %v, want 20", got)
	}
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Errorf("LinearToDB(0) = %v, want -Inf", got)
	}
	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Errorf("LinearToDB(-1) = %v, want NaN", got)
	}
}
