// Command colourizer-sweep drives the colourizer engine across a grid of
// sample rates, channel counts, modes, gains, mixes, and probe
// frequencies, and writes markdown and JSON reports of the results.
//
// Usage:
//
//	colourizer-sweep [flags]
//
// Examples:
//
//	colourizer-sweep
//	colourizer-sweep -out results -duration 0.5
//	colourizer-sweep -bank
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/SuzukiDaishi/colourizer-go/colourizer"
	"github.com/SuzukiDaishi/colourizer-go/dsp/core"
	"github.com/SuzukiDaishi/colourizer-go/dsp/filterbank"
	"github.com/SuzukiDaishi/colourizer-go/dsp/signal"
)

var (
	sampleRates = []float64{44100, 48000}
	channelSets = []int{1, 2, 6}
	modes       = []colourizer.ProcessingMode{colourizer.ModeMono, colourizer.ModeMulti}
	gains       = []float64{0.5, 1.0}
	mixes       = []float64{0.0, 1.0}
	frequencies = []float64{220, 440, 880, 1760}
)

type result struct {
	SampleRate float64 `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Frequency  float64 `json:"frequency"`
	Gain       float64 `json:"gain"`
	Mode       string  `json:"mode"`
	Mix        float64 `json:"mix"`
	Samples    int     `json:"samples"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	ElapsedSec float64 `json:"elapsed_sec"`
}

func main() {
	outDir := flag.String("out", ".", "output directory for reports")
	duration := flag.Float64("duration", 1.0, "probe duration in seconds")
	useBank := flag.Bool("bank", false, "sweep the note-bank engine instead of the single peak")
	flag.Parse()

	results, err := runSweep(*duration, *useBank)
	if err != nil {
		log.Fatal(err)
	}

	err = writeMarkdown(filepath.Join(*outDir, "test_results.md"), results)
	if err != nil {
		log.Fatal(err)
	}

	err = writeJSON(filepath.Join(*outDir, "test_results.json"), results)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %d results to %s", len(results), *outDir)
}

func runSweep(duration float64, useBank bool) ([]result, error) {
	var results []result

	for _, sr := range sampleRates {
		for _, channels := range channelSets {
			for _, mode := range modes {
				for _, gain := range gains {
					for _, mix := range mixes {
						for _, freq := range frequencies {
							r, err := runCase(sr, channels, mode, gain, mix, freq, duration, useBank)
							if err != nil {
								return nil, fmt.Errorf("case sr=%v ch=%d mode=%s: %w", sr, channels, mode, err)
							}
							results = append(results, r)
						}
					}
				}
			}
		}
	}

	return results, nil
}

func runCase(sr float64, channels int, mode colourizer.ProcessingMode, gain, mix, freq, duration float64, useBank bool) (result, error) {
	opts := []colourizer.Option{
		colourizer.WithMode(mode),
		colourizer.WithGain(gain),
		colourizer.WithMix(mix),
	}
	if useBank {
		opts = append(opts, colourizer.WithNoteBank(filterbank.MiyakoBushi))
	}

	engine, err := colourizer.NewEngine(opts...)
	if err != nil {
		return result{}, err
	}

	err = engine.Configure(sr, channels)
	if err != nil {
		return result{}, err
	}

	gen := signal.NewGenerator(core.WithSampleRate(sr))
	samples := int(sr * duration)

	block, err := gen.SinePlanar(freq, 1, channels, samples)
	if err != nil {
		return result{}, err
	}

	start := time.Now()
	err = engine.Process(block)
	if err != nil {
		return result{}, err
	}
	elapsed := time.Since(start)

	minV, maxV := block[0][0], block[0][0]
	for _, ch := range block {
		for _, v := range ch {
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}

	return result{
		SampleRate: sr,
		Channels:   channels,
		Frequency:  freq,
		Gain:       gain,
		Mode:       mode.String(),
		Mix:        mix,
		Samples:    samples,
		Min:        minV,
		Max:        maxV,
		ElapsedSec: elapsed.Seconds(),
	}, nil
}

func writeMarkdown(path string, results []result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "# Colourizer sweep results")
	fmt.Fprintln(f)
	fmt.Fprintln(f, "| Sample rate | Channels | Mode | Gain | Mix | Frequency | Min | Max | Elapsed (s) |")
	fmt.Fprintln(f, "|---|---|---|---|---|---|---|---|---|")

	for _, r := range results {
		fmt.Fprintf(f, "| %.0f | %d | %s | %.2f | %.2f | %.0f | %.6f | %.6f | %.6f |\n",
			r.SampleRate, r.Channels, r.Mode, r.Gain, r.Mix, r.Frequency, r.Min, r.Max, r.ElapsedSec)
	}

	return nil
}

func writeJSON(path string, results []result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
